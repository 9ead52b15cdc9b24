package tournament

import (
	"errors"
	"testing"

	"github.com/pitchside/matchday/models"
)

func roundMatch(id string, round int, status models.MatchStatus) models.Match {
	return models.Match{
		ID:          id,
		HomeTeam:    "Red",
		AwayTeam:    "Blue",
		RoundNumber: round,
		Status:      status,
	}
}

func TestDeriveRoundState(t *testing.T) {
	tests := []struct {
		name    string
		matches []models.Match
		want    RoundState
	}{
		{
			"no matches",
			nil,
			RoundState{},
		},
		{
			"only manual matches",
			[]models.Match{roundMatch("m1", models.ManualRound, models.MatchStatusCompleted)},
			RoundState{},
		},
		{
			"fresh schedule",
			[]models.Match{
				roundMatch("m1", 1, models.MatchStatusScheduled),
				roundMatch("m2", 2, models.MatchStatusScheduled),
			},
			RoundState{Current: 1, Max: 2, Started: true},
		},
		{
			"first round done",
			[]models.Match{
				roundMatch("m1", 1, models.MatchStatusCompleted),
				roundMatch("m2", 2, models.MatchStatusScheduled),
			},
			RoundState{Current: 2, Max: 2, Started: true},
		},
		{
			"cancelled round is skipped",
			[]models.Match{
				roundMatch("m1", 1, models.MatchStatusCancelled),
				roundMatch("m2", 2, models.MatchStatusScheduled),
			},
			RoundState{Current: 2, Max: 2, Started: true},
		},
		{
			"partially submitted round stays current",
			[]models.Match{
				roundMatch("m1", 1, models.MatchStatusCompleted),
				roundMatch("m2", 1, models.MatchStatusActive),
				roundMatch("m3", 2, models.MatchStatusScheduled),
			},
			RoundState{Current: 1, Max: 2, Started: true},
		},
		{
			"all settled",
			[]models.Match{
				roundMatch("m1", 1, models.MatchStatusCompleted),
				roundMatch("m2", 2, models.MatchStatusCancelled),
			},
			RoundState{Current: 3, Max: 2, Started: true, Complete: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveRoundState(tc.matches); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestBuildRoundSubmissionDefaultsToStoredScore(t *testing.T) {
	m1 := roundMatch("m1", 1, models.MatchStatusScheduled)
	m2 := roundMatch("m2", 1, models.MatchStatusScheduled)
	m2.HomeScore, m2.AwayScore = 3, 2

	updates, err := BuildRoundSubmission([]models.Match{m1, m2}, 1, map[string]Score{
		"m1": {Home: 1, Away: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	byID := map[string]MatchUpdate{}
	for _, u := range updates {
		if u.Status != models.MatchStatusCompleted || !u.IsFinal {
			t.Errorf("update %s must complete and finalize the match: %+v", u.MatchID, u)
		}
		byID[u.MatchID] = u
	}
	if u := byID["m1"]; u.HomeScore != 1 || u.AwayScore != 0 {
		t.Errorf("submitted score lost: %+v", u)
	}
	if u := byID["m2"]; u.HomeScore != 3 || u.AwayScore != 2 {
		t.Errorf("stored score should be kept when none submitted: %+v", u)
	}
}

func TestBuildRoundSubmissionSkipsSettledMatches(t *testing.T) {
	matches := []models.Match{
		roundMatch("m1", 1, models.MatchStatusCompleted),
		roundMatch("m2", 1, models.MatchStatusCancelled),
		roundMatch("m3", 1, models.MatchStatusScheduled),
	}
	updates, err := BuildRoundSubmission(matches, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 1 || updates[0].MatchID != "m3" {
		t.Errorf("only the pending match should be written, got %+v", updates)
	}
}

func TestBuildRoundSubmissionErrors(t *testing.T) {
	matches := []models.Match{
		roundMatch("m1", 1, models.MatchStatusScheduled),
		roundMatch("m2", 2, models.MatchStatusScheduled),
	}

	if _, err := BuildRoundSubmission(matches, 0, nil); !errors.Is(err, ErrInvalidRound) {
		t.Errorf("manual round must be rejected, got %v", err)
	}
	if _, err := BuildRoundSubmission(matches, 5, nil); !errors.Is(err, ErrRoundNotFound) {
		t.Errorf("missing round, got %v", err)
	}
	if _, err := BuildRoundSubmission(matches, 1, map[string]Score{"m1": {Home: -1}}); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score, got %v", err)
	}
	if _, err := BuildRoundSubmission(matches, 1, map[string]Score{"m2": {}}); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("score for another round's match, got %v", err)
	}
	if _, err := BuildRoundSubmission(matches, 1, map[string]Score{"ghost": {}}); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("score for unknown match, got %v", err)
	}
}

func TestBuildScoreOverrides(t *testing.T) {
	done := roundMatch("b", 1, models.MatchStatusCompleted)
	done2 := roundMatch("a", 2, models.MatchStatusCompleted)
	pending := roundMatch("c", 3, models.MatchStatusScheduled)
	matches := []models.Match{done, done2, pending}

	updates, err := BuildScoreOverrides(matches, map[string]Score{
		"b": {Home: 2, Away: 2},
		"a": {Home: 0, Away: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 2 || updates[0].MatchID != "a" || updates[1].MatchID != "b" {
		t.Errorf("updates must come back in match-id order, got %+v", updates)
	}

	if _, err := BuildScoreOverrides(matches, map[string]Score{"ghost": {}}); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("unknown match, got %v", err)
	}
	if _, err := BuildScoreOverrides(matches, map[string]Score{"c": {}}); !errors.Is(err, ErrMatchNotEditable) {
		t.Errorf("pending match edit, got %v", err)
	}
	if _, err := BuildScoreOverrides(matches, map[string]Score{"b": {Away: -2}}); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative override, got %v", err)
	}
}

func TestApplyUpdatesLeavesInputUntouched(t *testing.T) {
	matches := []models.Match{roundMatch("m1", 1, models.MatchStatusScheduled)}
	out := ApplyUpdates(matches, []MatchUpdate{{
		MatchID:   "m1",
		HomeScore: 4,
		AwayScore: 1,
		Status:    models.MatchStatusCompleted,
		IsFinal:   true,
	}})

	if matches[0].Status != models.MatchStatusScheduled || matches[0].HomeScore != 0 {
		t.Errorf("input slice mutated: %+v", matches[0])
	}
	if out[0].HomeScore != 4 || out[0].Status != models.MatchStatusCompleted || !out[0].IsFinal {
		t.Errorf("update not applied: %+v", out[0])
	}
}
