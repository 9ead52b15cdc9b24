package models

import (
	"errors"
	"testing"
)

func validMatch() Match {
	return Match{
		ID:          "m1",
		GameID:      "g1",
		HomeTeam:    "Red",
		AwayTeam:    "Blue",
		RoundNumber: 1,
		Status:      MatchStatusScheduled,
	}
}

func TestMatchValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Match)
		want error
	}{
		{"valid", nil, nil},
		{"manual round is valid", func(m *Match) { m.RoundNumber = ManualRound }, nil},
		{"missing home team", func(m *Match) { m.HomeTeam = "" }, ErrMatchTeamRequired},
		{"missing away team", func(m *Match) { m.AwayTeam = "" }, ErrMatchTeamRequired},
		{"same team twice", func(m *Match) { m.AwayTeam = m.HomeTeam }, ErrMatchSameTeam},
		{"negative home score", func(m *Match) { m.HomeScore = -1 }, ErrMatchNegativeScore},
		{"negative away score", func(m *Match) { m.AwayScore = -3 }, ErrMatchNegativeScore},
		{"negative round", func(m *Match) { m.RoundNumber = -1 }, ErrMatchInvalidRound},
		{"bogus status", func(m *Match) { m.Status = "paused" }, ErrMatchInvalidStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := validMatch()
			if tc.mod != nil {
				tc.mod(&m)
			}
			if err := m.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMatchIsTournament(t *testing.T) {
	m := validMatch()
	if !m.IsTournament() {
		t.Error("round 1 match should be a tournament match")
	}
	m.RoundNumber = ManualRound
	if m.IsTournament() {
		t.Error("manual matches are outside round progression")
	}
}
