package models

import "time"

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "active"
	BookingStatusPaid     BookingStatus = "paid"
	BookingStatusWaitlist BookingStatus = "waitlist"
	BookingStatusRefunded BookingStatus = "refunded"
)

// Booking ties a player to a game and, once teams are drawn, to a team name.
// The booking subsystem owns these rows; the tournament core only reads the
// team assignment and writes the is_winner flag during finalization.
type Booking struct {
	ID             string        `json:"id" db:"id"`
	GameID         string        `json:"game_id" db:"game_id"`
	UserID         string        `json:"user_id" db:"user_id"`
	PlayerName     string        `json:"player_name" db:"player_name"`
	TeamAssignment *string       `json:"team_assignment,omitempty" db:"team_assignment"`
	Status         BookingStatus `json:"status" db:"status"`
	IsWinner       bool          `json:"is_winner" db:"is_winner"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}
