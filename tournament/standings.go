package tournament

import (
	"sort"

	"github.com/pitchside/matchday/models"
)

// ComputeStandings builds the live table for a set of matches. Only completed
// matches count; scheduled, active and cancelled ones are ignored. Every
// configured team gets a row even with nothing played, and a completed match
// referencing a team missing from the config still contributes a row rather
// than losing its result.
//
// Rows are ordered by points, then goal difference, then goals scored, all
// descending. Teams equal on the whole tuple keep their input order, which
// makes the function repeatable for identical inputs.
func ComputeStandings(teams []models.TeamConfig, matches []models.Match) []models.StandingRow {
	stats := make(map[string]*models.StandingRow, len(teams))
	order := make([]string, 0, len(teams))

	row := func(name string) *models.StandingRow {
		if r, ok := stats[name]; ok {
			return r
		}
		r := &models.StandingRow{Team: name}
		stats[name] = r
		order = append(order, name)
		return r
	}

	for _, t := range teams {
		row(t.Name)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}
		home := row(m.HomeTeam)
		away := row(m.AwayTeam)

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case m.AwayScore > m.HomeScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	rows := make([]models.StandingRow, 0, len(order))
	for _, name := range order {
		r := stats[name]
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		rows = append(rows, *r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	return rows
}

// Winner returns the team topping the standings. The second return is false
// when nothing has been played yet, in which case no winner can be offered.
func Winner(teams []models.TeamConfig, matches []models.Match) (string, bool) {
	rows := ComputeStandings(teams, matches)
	if len(rows) == 0 || rows[0].Played == 0 {
		return "", false
	}
	return rows[0].Team, true
}
