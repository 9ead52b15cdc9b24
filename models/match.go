package models

import (
	"errors"
	"time"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusActive    MatchStatus = "active"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// ManualRound is the reserved round_number for matches recorded by hand.
// Such matches are invisible to round progression.
const ManualRound = 0

var (
	ErrMatchSameTeam      = errors.New("home and away team must differ")
	ErrMatchNegativeScore = errors.New("match scores must be non-negative")
	ErrMatchInvalidRound  = errors.New("round number must be zero or positive")
	ErrMatchInvalidStatus = errors.New("invalid match status")
	ErrMatchTeamRequired  = errors.New("both team names are required")
)

type Match struct {
	ID          string      `json:"id" db:"id"`
	GameID      string      `json:"game_id" db:"game_id"`
	HomeTeam    string      `json:"home_team" db:"home_team"`
	AwayTeam    string      `json:"away_team" db:"away_team"`
	HomeScore   int         `json:"home_score" db:"home_score"`
	AwayScore   int         `json:"away_score" db:"away_score"`
	RoundNumber int         `json:"round_number" db:"round_number"`
	Status      MatchStatus `json:"status" db:"status"`
	IsFinal     bool        `json:"is_final" db:"is_final"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusActive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Validate checks the invariants every persisted match must hold.
func (m *Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return ErrMatchTeamRequired
	}
	if m.HomeTeam == m.AwayTeam {
		return ErrMatchSameTeam
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return ErrMatchNegativeScore
	}
	if m.RoundNumber < ManualRound {
		return ErrMatchInvalidRound
	}
	if !m.Status.Valid() {
		return ErrMatchInvalidStatus
	}
	return nil
}

// IsTournament reports whether the match belongs to a generated fixture list
// and is therefore subject to round progression.
func (m *Match) IsTournament() bool {
	return m.RoundNumber > ManualRound
}
