package tournament

import (
	"errors"
	"fmt"

	"github.com/pitchside/matchday/models"
)

// byeIndex marks the synthetic opponent inserted when the team count is odd.
// A pairing touching it is dropped and that team sits the rotation out.
const byeIndex = -1

var (
	ErrNotEnoughTeams     = errors.New("at least two teams are required")
	ErrInvalidMatchLength = errors.New("match length must be a positive number of minutes")
	ErrInvalidFieldCount  = errors.New("at least one concurrent field is required")
	ErrDuplicateTeamName  = errors.New("team names must be unique")
)

// FixtureConfig carries the timing constraints for a generated schedule.
// All values are minutes, except Fields which is the number of pitches
// available per time slot.
type FixtureConfig struct {
	DurationMinutes    int `json:"duration_minutes"`
	WarmupMinutes      int `json:"warmup_minutes"`
	MatchLengthMinutes int `json:"match_length_minutes"`
	Fields             int `json:"fields"`
}

type Pairing struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ScheduledRound is one time slot of a generated schedule. StartOffsetMinutes
// is relative to the event start; absolute times are the caller's concern.
type ScheduledRound struct {
	Round              int       `json:"round"`
	StartOffsetMinutes int       `json:"start_offset_minutes"`
	Pairings           []Pairing `json:"matches"`
}

// GenerateFixtures builds a single round-robin schedule with the circle
// method: index 0 stays fixed while the remaining indices rotate one position
// per round, pairing index i against index n-1-i. The number of rounds is
// capped by how many match slots fit between warmup and the end of the event;
// when time runs short the tail rotations are simply not scheduled. Within a
// slot only the first Fields pairings are kept — excess pairings are dropped,
// not deferred to a later slot.
//
// An empty (non-nil) schedule is returned when no slot fits the window.
func GenerateFixtures(teams []models.TeamConfig, cfg FixtureConfig) ([]ScheduledRound, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, len(teams))
	}
	if cfg.MatchLengthMinutes <= 0 {
		return nil, ErrInvalidMatchLength
	}
	if cfg.Fields < 1 {
		return nil, ErrInvalidFieldCount
	}
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeamName, t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	maxRounds := (cfg.DurationMinutes - cfg.WarmupMinutes) / cfg.MatchLengthMinutes
	if maxRounds < 0 {
		maxRounds = 0
	}

	indices := make([]int, len(teams))
	for i := range indices {
		indices[i] = i
	}
	if len(indices)%2 != 0 {
		indices = append(indices, byeIndex)
	}

	// One full single round-robin needs n-1 rotations of the working set.
	rotations := len(indices) - 1
	slots := maxRounds
	if rotations < slots {
		slots = rotations
	}

	rounds := make([]ScheduledRound, 0, slots)
	for slot := 0; slot < slots; slot++ {
		pairings := make([]Pairing, 0, len(indices)/2)
		for i := 0; i < len(indices)/2; i++ {
			home := indices[i]
			away := indices[len(indices)-1-i]
			if home == byeIndex || away == byeIndex {
				continue
			}
			pairings = append(pairings, Pairing{Home: teams[home].Name, Away: teams[away].Name})
		}
		if len(pairings) > cfg.Fields {
			pairings = pairings[:cfg.Fields]
		}
		rounds = append(rounds, ScheduledRound{
			Round:              slot + 1,
			StartOffsetMinutes: cfg.WarmupMinutes + slot*cfg.MatchLengthMinutes,
			Pairings:           pairings,
		})
		rotate(indices)
	}
	return rounds, nil
}

// rotate keeps index 0 fixed and shifts indices 1..n-1 one position, moving
// the last element to position 1.
func rotate(indices []int) {
	if len(indices) < 3 {
		return
	}
	last := indices[len(indices)-1]
	copy(indices[2:], indices[1:len(indices)-1])
	indices[1] = last
}
