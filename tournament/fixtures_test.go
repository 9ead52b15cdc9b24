package tournament

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pitchside/matchday/models"
)

func teams(names ...string) []models.TeamConfig {
	out := make([]models.TeamConfig, len(names))
	for i, n := range names {
		out[i] = models.TeamConfig{Name: n}
	}
	return out
}

func pairKey(p Pairing) string {
	if p.Home < p.Away {
		return p.Home + "|" + p.Away
	}
	return p.Away + "|" + p.Home
}

func TestGenerateFixturesFullRoundRobinEvenTeams(t *testing.T) {
	rounds, err := GenerateFixtures(teams("A", "B", "C", "D"), FixtureConfig{
		DurationMinutes:    30,
		MatchLengthMinutes: 10,
		Fields:             2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds for 4 teams, got %d", len(rounds))
	}

	seen := make(map[string]bool)
	total := 0
	for i, r := range rounds {
		if r.Round != i+1 {
			t.Errorf("round %d numbered %d", i+1, r.Round)
		}
		if len(r.Pairings) != 2 {
			t.Errorf("round %d has %d pairings, want 2", r.Round, len(r.Pairings))
		}
		for _, p := range r.Pairings {
			if p.Home == p.Away {
				t.Errorf("round %d pairs %q against itself", r.Round, p.Home)
			}
			key := pairKey(p)
			if seen[key] {
				t.Errorf("pairing %s scheduled twice", key)
			}
			seen[key] = true
			total++
		}
	}
	if total != 6 {
		t.Errorf("expected all 6 pairings for 4 teams, got %d", total)
	}
}

func TestGenerateFixturesOddTeamsGetByes(t *testing.T) {
	rounds, err := GenerateFixtures(teams("Red", "Green", "Blue"), FixtureConfig{
		DurationMinutes:    40,
		WarmupMinutes:      10,
		MatchLengthMinutes: 10,
		Fields:             2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds for 3 teams, got %d", len(rounds))
	}

	seen := make(map[string]bool)
	for i, r := range rounds {
		wantOffset := 10 + i*10
		if r.StartOffsetMinutes != wantOffset {
			t.Errorf("round %d offset = %d, want %d", r.Round, r.StartOffsetMinutes, wantOffset)
		}
		if len(r.Pairings) != 1 {
			t.Fatalf("round %d has %d pairings, want 1 (one team sits out)", r.Round, len(r.Pairings))
		}
		seen[pairKey(r.Pairings[0])] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct pairings, got %d", len(seen))
	}
}

func TestGenerateFixturesFieldLimitDropsPairings(t *testing.T) {
	rounds, err := GenerateFixtures(teams("A", "B", "C", "D", "E", "F"), FixtureConfig{
		DurationMinutes:    300,
		MatchLengthMinutes: 15,
		Fields:             2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rounds {
		if len(r.Pairings) > 2 {
			t.Errorf("round %d has %d pairings, field limit is 2", r.Round, len(r.Pairings))
		}
	}
}

func TestGenerateFixturesTimeWindowCapsRounds(t *testing.T) {
	rounds, err := GenerateFixtures(teams("A", "B", "C", "D"), FixtureConfig{
		DurationMinutes:    25,
		MatchLengthMinutes: 10,
		Fields:             2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rounds) != 2 {
		t.Errorf("expected rotation cut to 2 rounds by the time window, got %d", len(rounds))
	}
}

func TestGenerateFixturesNoSlotFits(t *testing.T) {
	rounds, err := GenerateFixtures(teams("A", "B"), FixtureConfig{
		DurationMinutes:    15,
		WarmupMinutes:      10,
		MatchLengthMinutes: 10,
		Fields:             1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rounds == nil {
		t.Fatal("expected empty schedule, got nil")
	}
	if len(rounds) != 0 {
		t.Errorf("expected no rounds, got %d", len(rounds))
	}
}

func TestGenerateFixturesValidation(t *testing.T) {
	base := FixtureConfig{
		DurationMinutes:    60,
		MatchLengthMinutes: 10,
		Fields:             1,
	}

	tests := []struct {
		name  string
		teams []models.TeamConfig
		mod   func(*FixtureConfig)
		want  error
	}{
		{"one team", teams("A"), nil, ErrNotEnoughTeams},
		{"zero match length", teams("A", "B"), func(c *FixtureConfig) { c.MatchLengthMinutes = 0 }, ErrInvalidMatchLength},
		{"negative match length", teams("A", "B"), func(c *FixtureConfig) { c.MatchLengthMinutes = -5 }, ErrInvalidMatchLength},
		{"zero fields", teams("A", "B"), func(c *FixtureConfig) { c.Fields = 0 }, ErrInvalidFieldCount},
		{"duplicate names", teams("A", "A"), nil, ErrDuplicateTeamName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			if tc.mod != nil {
				tc.mod(&cfg)
			}
			_, err := GenerateFixtures(tc.teams, cfg)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGenerateFixturesEveryTeamPlaysEveryOther(t *testing.T) {
	for _, n := range []int{2, 4, 5, 7, 8} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("T%d", i)
			}
			rounds, err := GenerateFixtures(teams(names...), FixtureConfig{
				DurationMinutes:    10 * n, // enough for every rotation
				MatchLengthMinutes: 10,
				Fields:             n, // no field pressure
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantRounds := n - 1
			if n%2 != 0 {
				wantRounds = n
			}
			if len(rounds) != wantRounds {
				t.Fatalf("expected %d rounds, got %d", wantRounds, len(rounds))
			}

			seen := make(map[string]bool)
			for _, r := range rounds {
				for _, p := range r.Pairings {
					key := pairKey(p)
					if seen[key] {
						t.Errorf("pairing %s scheduled twice", key)
					}
					seen[key] = true
				}
			}
			if want := n * (n - 1) / 2; len(seen) != want {
				t.Errorf("expected %d distinct pairings, got %d", want, len(seen))
			}
		})
	}
}
