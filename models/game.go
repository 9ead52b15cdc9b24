package models

import "time"

type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// GameMode tags how a game's matches are managed. The mode is set explicitly
// when a schedule is saved rather than inferred from stored round numbers.
type GameMode string

const (
	GameModeManual     GameMode = "manual"
	GameModeRoundRobin GameMode = "round_robin"
)

type Game struct {
	ID             string       `json:"id" db:"id"`
	Title          string       `json:"title" db:"title"`
	Location       *string      `json:"location,omitempty" db:"location"`
	StartTime      time.Time    `json:"start_time" db:"start_time"`
	EndTime        *time.Time   `json:"end_time,omitempty" db:"end_time"`
	Status         GameStatus   `json:"status" db:"status"`
	Mode           GameMode     `json:"mode" db:"mode"`
	TeamsConfig    []TeamConfig `json:"teams_config" db:"-"`
	MVPPlayerID    *string      `json:"mvp_player_id,omitempty" db:"mvp_player_id"`
	CurrentPlayers int          `json:"current_players" db:"current_players"`
	CoverKey       *string      `json:"-" db:"cover_key"`
	CoverURL       *string      `json:"cover_url,omitempty" db:"-"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// DurationMinutes returns the length of the booked slot, or 0 when the end
// time is unset or not after the start.
func (g *Game) DurationMinutes() int {
	if g.EndTime == nil {
		return 0
	}
	d := g.EndTime.Sub(g.StartTime)
	if d <= 0 {
		return 0
	}
	return int(d.Minutes())
}
