package tournament

import (
	"errors"
	"sort"

	"github.com/pitchside/matchday/models"
)

var (
	ErrInvalidRound     = errors.New("round number must be positive")
	ErrRoundNotFound    = errors.New("no matches exist for the requested round")
	ErrNegativeScore    = errors.New("scores must be non-negative")
	ErrUnknownMatch     = errors.New("score refers to a match outside the selection")
	ErrMatchNotEditable = errors.New("only completed matches can be edited")
)

// Score is one submitted result, keyed by match id in the request maps.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// RoundState is the derived position of a tournament. It is never stored;
// progression recomputes it from the match list after every write.
type RoundState struct {
	Current  int  `json:"current_round"`
	Max      int  `json:"max_round"`
	Started  bool `json:"started"`
	Complete bool `json:"complete"`
}

// DeriveRoundState inspects a game's matches and reports which round is live.
// Manual matches (round 0) are invisible here. The current round is the lowest
// round holding a match that is neither completed nor cancelled; a round whose
// matches were all cancelled, or that got no matches at all when fixtures were
// cut down by the field limit, is skipped without needing input. When every
// tournament match is settled the state is Complete and Current points one
// past Max.
func DeriveRoundState(matches []models.Match) RoundState {
	var st RoundState
	current := 0
	for _, m := range matches {
		if !m.IsTournament() {
			continue
		}
		st.Started = true
		if m.RoundNumber > st.Max {
			st.Max = m.RoundNumber
		}
		if m.Status == models.MatchStatusCompleted || m.Status == models.MatchStatusCancelled {
			continue
		}
		if current == 0 || m.RoundNumber < current {
			current = m.RoundNumber
		}
	}
	if !st.Started {
		return st
	}
	if current == 0 {
		st.Complete = true
		st.Current = st.Max + 1
		return st
	}
	st.Current = current
	return st
}

// MatchUpdate is one write produced by a round submission or a result edit.
type MatchUpdate struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Status    models.MatchStatus
	IsFinal   bool
}

// BuildRoundSubmission validates the submitted scores for one round and
// returns the updates that close it out. Matches already completed stay
// untouched, so a round interrupted mid-save can be resubmitted; cancelled
// matches are excluded without blocking. A pending match with no submitted
// score closes with whatever is stored — 0-0 for a freshly generated fixture —
// rather than holding up the round.
func BuildRoundSubmission(matches []models.Match, round int, scores map[string]Score) ([]MatchUpdate, error) {
	if round <= models.ManualRound {
		return nil, ErrInvalidRound
	}
	inRound := make(map[string]bool)
	var updates []MatchUpdate
	for _, m := range matches {
		if m.RoundNumber != round {
			continue
		}
		inRound[m.ID] = true
		if m.Status == models.MatchStatusCompleted || m.Status == models.MatchStatusCancelled {
			continue
		}
		s, submitted := scores[m.ID]
		if !submitted {
			s = Score{Home: m.HomeScore, Away: m.AwayScore}
		}
		if s.Home < 0 || s.Away < 0 {
			return nil, ErrNegativeScore
		}
		updates = append(updates, MatchUpdate{
			MatchID:   m.ID,
			HomeScore: s.Home,
			AwayScore: s.Away,
			Status:    models.MatchStatusCompleted,
			IsFinal:   true,
		})
	}
	if len(inRound) == 0 {
		return nil, ErrRoundNotFound
	}
	for id := range scores {
		if !inRound[id] {
			return nil, ErrUnknownMatch
		}
	}
	return updates, nil
}

// BuildScoreOverrides validates edit-mode score changes against the stored
// matches. Only matches that already completed may be edited; round numbers
// and untouched matches are left alone. Updates come back in sorted match-id
// order so the applying transaction is deterministic.
func BuildScoreOverrides(matches []models.Match, overrides map[string]Score) ([]MatchUpdate, error) {
	byID := make(map[string]models.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	updates := make([]MatchUpdate, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			return nil, ErrUnknownMatch
		}
		if m.Status != models.MatchStatusCompleted {
			return nil, ErrMatchNotEditable
		}
		s := overrides[id]
		if s.Home < 0 || s.Away < 0 {
			return nil, ErrNegativeScore
		}
		updates = append(updates, MatchUpdate{
			MatchID:   id,
			HomeScore: s.Home,
			AwayScore: s.Away,
			Status:    models.MatchStatusCompleted,
			IsFinal:   true,
		})
	}
	return updates, nil
}

// ApplyUpdates returns a copy of matches with the given updates applied,
// leaving the input untouched. Standings after a submission are computed from
// this so the broadcast matches what the transaction just persisted.
func ApplyUpdates(matches []models.Match, updates []MatchUpdate) []models.Match {
	byID := make(map[string]MatchUpdate, len(updates))
	for _, u := range updates {
		byID[u.MatchID] = u
	}
	out := make([]models.Match, len(matches))
	copy(out, matches)
	for i := range out {
		u, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		out[i].HomeScore = u.HomeScore
		out[i].AwayScore = u.AwayScore
		out[i].Status = u.Status
		out[i].IsFinal = u.IsFinal
	}
	return out
}
