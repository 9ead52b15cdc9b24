package models

// StandingRow is one line of a game's live table. Rows are never persisted;
// they are recomputed from the match list on every read.
// Points = 3*Wins + Draws, GoalDifference = GoalsFor - GoalsAgainst.
type StandingRow struct {
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}
