package tournament

import (
	"testing"

	"github.com/pitchside/matchday/models"
)

func completedMatch(id, home, away string, homeScore, awayScore int) models.Match {
	return models.Match{
		ID:          id,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		RoundNumber: 1,
		Status:      models.MatchStatusCompleted,
		IsFinal:     true,
	}
}

func TestComputeStandingsNoMatches(t *testing.T) {
	rows := ComputeStandings(teams("Red", "Green", "Blue"), nil)
	if len(rows) != 3 {
		t.Fatalf("expected a row per configured team, got %d", len(rows))
	}
	for i, want := range []string{"Red", "Green", "Blue"} {
		r := rows[i]
		if r.Team != want {
			t.Errorf("row %d team = %q, want %q (config order must hold on ties)", i, r.Team, want)
		}
		if r.Played != 0 || r.Points != 0 || r.GoalDifference != 0 {
			t.Errorf("row %d not zeroed: %+v", i, r)
		}
	}
}

func TestComputeStandingsTable(t *testing.T) {
	cfg := teams("Red", "Green", "Blue")
	matches := []models.Match{
		completedMatch("m1", "Red", "Blue", 2, 1),
		completedMatch("m2", "Red", "Green", 1, 1),
		completedMatch("m3", "Green", "Blue", 0, 0),
	}

	rows := ComputeStandings(cfg, matches)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []models.StandingRow{
		{Team: "Red", Played: 2, Wins: 1, Draws: 1, Losses: 0, GoalsFor: 3, GoalsAgainst: 2, GoalDifference: 1, Points: 4},
		{Team: "Green", Played: 2, Wins: 0, Draws: 2, Losses: 0, GoalsFor: 1, GoalsAgainst: 1, GoalDifference: 0, Points: 2},
		{Team: "Blue", Played: 2, Wins: 0, Draws: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1, Points: 1},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestComputeStandingsIgnoresNonCompleted(t *testing.T) {
	cfg := teams("Red", "Blue")
	pending := completedMatch("m1", "Red", "Blue", 9, 0)
	pending.Status = models.MatchStatusScheduled
	cancelled := completedMatch("m2", "Blue", "Red", 5, 0)
	cancelled.Status = models.MatchStatusCancelled

	rows := ComputeStandings(cfg, []models.Match{pending, cancelled})
	for _, r := range rows {
		if r.Played != 0 || r.Points != 0 {
			t.Errorf("non-completed match counted: %+v", r)
		}
	}
}

func TestComputeStandingsMatchOrderIrrelevant(t *testing.T) {
	cfg := teams("Red", "Green", "Blue")
	a := []models.Match{
		completedMatch("m1", "Red", "Blue", 2, 1),
		completedMatch("m2", "Red", "Green", 1, 1),
		completedMatch("m3", "Green", "Blue", 0, 0),
	}
	b := []models.Match{a[2], a[0], a[1]}

	rowsA := ComputeStandings(cfg, a)
	rowsB := ComputeStandings(cfg, b)
	for i := range rowsA {
		if rowsA[i] != rowsB[i] {
			t.Errorf("row %d differs across match order: %+v vs %+v", i, rowsA[i], rowsB[i])
		}
	}
}

func TestComputeStandingsPointsConservation(t *testing.T) {
	cfg := teams("A", "B", "C", "D")
	matches := []models.Match{
		completedMatch("m1", "A", "B", 3, 0),
		completedMatch("m2", "C", "D", 2, 2),
		completedMatch("m3", "A", "C", 1, 2),
		completedMatch("m4", "B", "D", 0, 0),
	}

	rows := ComputeStandings(cfg, matches)
	totalPoints, totalGD := 0, 0
	for _, r := range rows {
		totalPoints += r.Points
		totalGD += r.GoalDifference
	}
	// 3 points per decided match, 2 per draw; goal difference always nets out.
	if want := 3 + 2 + 3 + 2; totalPoints != want {
		t.Errorf("total points = %d, want %d", totalPoints, want)
	}
	if totalGD != 0 {
		t.Errorf("goal differences sum to %d, want 0", totalGD)
	}
}

func TestComputeStandingsUnknownTeamGetsRow(t *testing.T) {
	cfg := teams("Red", "Blue")
	rows := ComputeStandings(cfg, []models.Match{
		completedMatch("m1", "Red", "Strays", 0, 4),
	})
	found := false
	for _, r := range rows {
		if r.Team == "Strays" {
			found = true
			if r.Points != 3 || r.Played != 1 {
				t.Errorf("unexpected row for unconfigured team: %+v", r)
			}
		}
	}
	if !found {
		t.Error("team appearing only in results should still get a row")
	}
}

func TestWinner(t *testing.T) {
	cfg := teams("Red", "Blue")

	if _, ok := Winner(cfg, nil); ok {
		t.Error("no winner expected before anything is played")
	}

	got, ok := Winner(cfg, []models.Match{completedMatch("m1", "Blue", "Red", 1, 0)})
	if !ok || got != "Blue" {
		t.Errorf("Winner = %q, %v; want Blue, true", got, ok)
	}
}
