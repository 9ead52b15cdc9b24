package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitchside/matchday/models"
	"github.com/pitchside/matchday/repositories"
	"github.com/pitchside/matchday/tournament"
)

// RoundScores maps match ids to submitted results.
type RoundScores map[string]tournament.Score

// MVPUpdate is an explicit-change wrapper for the MVP award. Set false keeps
// the award with its current holder; Set true with a nil PlayerID removes it.
// The distinction matters on re-finalize, where a request that never mentions
// the MVP must not strip the holder's award.
type MVPUpdate struct {
	Set      bool
	PlayerID *string
}

type TournamentService interface {
	RoundState(ctx context.Context, gameID string) (tournament.RoundState, error)
	Standings(ctx context.Context, gameID string) ([]models.StandingRow, error)
	SubmitRound(ctx context.Context, gameID string, round int, scores RoundScores) (tournament.RoundState, error)
	Finalize(ctx context.Context, gameID, winningTeam string, mvpPlayerID *string) error
	ReFinalize(ctx context.Context, gameID string, overrides RoundScores, mvp MVPUpdate) error
}

type tournamentService struct {
	db          *sql.DB
	gameRepo    repositories.GameRepository
	matchRepo   repositories.MatchRepository
	bookingRepo repositories.BookingRepository
	profileRepo repositories.ProfileRepository
	hub         *tournament.Hub
	logger      *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	bookingRepo repositories.BookingRepository,
	profileRepo repositories.ProfileRepository,
	hub *tournament.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:          db,
		gameRepo:    gameRepo,
		matchRepo:   matchRepo,
		bookingRepo: bookingRepo,
		profileRepo: profileRepo,
		hub:         hub,
		logger:      logger,
	}
}

func (s *tournamentService) RoundState(ctx context.Context, gameID string) (tournament.RoundState, error) {
	matches, err := s.loadGameMatches(ctx, gameID)
	if err != nil {
		return tournament.RoundState{}, err
	}
	return tournament.DeriveRoundState(matches), nil
}

func (s *tournamentService) Standings(ctx context.Context, gameID string) ([]models.StandingRow, error) {
	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	matches, err := s.matchRepo.ListByGame(ctx, s.db, gameID)
	if err != nil {
		return nil, err
	}
	return tournament.ComputeStandings(game.TeamsConfig, matches), nil
}

// SubmitRound closes the active round in one transaction: pending matches get
// their submitted scores (or keep their stored 0-0), everything flips to
// completed and is_final, and the next round becomes current. Matches already
// completed are untouched so an interrupted save can be retried.
func (s *tournamentService) SubmitRound(ctx context.Context, gameID string, round int, scores RoundScores) (tournament.RoundState, error) {
	var (
		state        tournament.RoundState
		finalGame    *models.Game
		finalMatches []models.Match
	)

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Status == models.GameStatusCompleted {
			return ErrAlreadyFinalized
		}
		if game.Mode != models.GameModeRoundRobin {
			return ErrNotRoundRobin
		}

		matches, err := s.matchRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		current := tournament.DeriveRoundState(matches)
		if !current.Started || current.Complete {
			return ErrRoundNotFound
		}
		if round != current.Current {
			return fmt.Errorf("%w: active round is %d", ErrRoundNotCurrent, current.Current)
		}

		updates, err := tournament.BuildRoundSubmission(matches, round, scores)
		if err != nil {
			return mapTournamentError(err)
		}
		for _, u := range updates {
			if err := s.matchRepo.UpdateResult(ctx, tx, u.MatchID, u.HomeScore, u.AwayScore, u.Status, u.IsFinal); err != nil {
				return err
			}
		}

		updated := tournament.ApplyUpdates(matches, updates)
		state = tournament.DeriveRoundState(updated)
		finalGame, finalMatches = game, updated
		return nil
	})
	if err != nil {
		return tournament.RoundState{}, err
	}
	s.broadcastStandings(finalGame, finalMatches)
	s.hub.BroadcastToGame(gameID, tournament.Event{
		Type:    tournament.MessageRoundAdvanced,
		GameID:  gameID,
		Payload: state,
	})

	s.logger.Info("round submitted",
		slog.String("game_id", gameID),
		slog.Int("round", round),
		slog.Bool("complete", state.Complete),
	)
	return state, nil
}

// Finalize closes the tournament out: win flags move to the given team's
// bookings, the MVP award swaps holders if it changed, and the game goes to
// completed. An empty winningTeam takes the top standings row. All effects
// land in one transaction; calling it again with the same inputs is a no-op
// for both flags and award counts.
func (s *tournamentService) Finalize(ctx context.Context, gameID, winningTeam string, mvpPlayerID *string) error {
	var (
		finalGame    *models.Game
		finalMatches []models.Match
	)
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		matches, err := s.matchRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}

		if winningTeam == "" {
			top, ok := tournament.Winner(game.TeamsConfig, matches)
			if !ok {
				return ErrNoWinner
			}
			winningTeam = top
		}
		if !models.HasTeam(game.TeamsConfig, winningTeam) {
			return fmt.Errorf("%w: %q", ErrUnknownTeam, winningTeam)
		}

		if err := s.applyWinner(ctx, tx, gameID, winningTeam); err != nil {
			return err
		}
		if err := s.swapMVP(ctx, tx, game.MVPPlayerID, mvpPlayerID); err != nil {
			return err
		}
		if err := s.gameRepo.SetCompleted(ctx, tx, gameID, mvpPlayerID); err != nil {
			return err
		}
		finalGame, finalMatches = game, matches
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastToGame(gameID, tournament.Event{
		Type:   tournament.MessageGameFinalized,
		GameID: gameID,
		Payload: map[string]interface{}{
			"winner":    winningTeam,
			"standings": tournament.ComputeStandings(finalGame.TeamsConfig, finalMatches),
		},
	})
	s.logger.Info("game finalized", slog.String("game_id", gameID), slog.String("winner", winningTeam))
	return nil
}

// ReFinalize edits an already-finalized game: score overrides are applied to
// completed matches only, the winner is recomputed from the full standings
// order, and win flags plus the MVP award are reapplied. Round numbers and
// untouched matches are left alone. Running it twice with the same inputs
// leaves flags and award counts unchanged.
func (s *tournamentService) ReFinalize(ctx context.Context, gameID string, overrides RoundScores, mvp MVPUpdate) error {
	var (
		winner       string
		finalGame    *models.Game
		finalMatches []models.Match
	)

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Status != models.GameStatusCompleted {
			return ErrNotFinalized
		}

		matches, err := s.matchRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		updates, err := tournament.BuildScoreOverrides(matches, overrides)
		if err != nil {
			return mapTournamentError(err)
		}
		for _, u := range updates {
			if err := s.matchRepo.UpdateResult(ctx, tx, u.MatchID, u.HomeScore, u.AwayScore, u.Status, u.IsFinal); err != nil {
				return err
			}
		}

		updated := tournament.ApplyUpdates(matches, updates)
		top, ok := tournament.Winner(game.TeamsConfig, updated)
		if !ok {
			return ErrNoWinner
		}
		winner = top

		if err := s.applyWinner(ctx, tx, gameID, winner); err != nil {
			return err
		}
		nextMVP := game.MVPPlayerID
		if mvp.Set {
			nextMVP = mvp.PlayerID
		}
		if err := s.swapMVP(ctx, tx, game.MVPPlayerID, nextMVP); err != nil {
			return err
		}
		if err := s.gameRepo.SetCompleted(ctx, tx, gameID, nextMVP); err != nil {
			return err
		}
		finalGame, finalMatches = game, updated
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastStandings(finalGame, finalMatches)
	s.logger.Info("game re-finalized", slog.String("game_id", gameID), slog.String("winner", winner))
	return nil
}

// applyWinner resets every win flag for the game and sets them for the
// winning team's bookings. Clearing first makes repeated finalization safe.
func (s *tournamentService) applyWinner(ctx context.Context, tx *sql.Tx, gameID, team string) error {
	if err := s.bookingRepo.ClearWinners(ctx, tx, gameID); err != nil {
		return err
	}
	flagged, err := s.bookingRepo.SetWinnersByTeam(ctx, tx, gameID, team)
	if err != nil {
		return err
	}
	if flagged == 0 {
		s.logger.Warn("no bookings assigned to winning team", slog.String("game_id", gameID), slog.String("team", team))
	}
	return nil
}

// swapMVP moves the award between holders: the previous MVP is decremented
// (floored at zero in the store) before the new one is incremented. When the
// holder is unchanged nothing is written, which is what makes repeated
// finalization leave the ledger untouched.
func (s *tournamentService) swapMVP(ctx context.Context, tx *sql.Tx, previous, next *string) error {
	if equalID(previous, next) {
		return nil
	}
	if previous != nil {
		if err := s.profileRepo.AdjustMVPAwards(ctx, tx, *previous, -1); err != nil {
			return err
		}
	}
	if next != nil {
		if err := s.profileRepo.AdjustMVPAwards(ctx, tx, *next, +1); err != nil {
			return err
		}
	}
	return nil
}

func (s *tournamentService) broadcastStandings(game *models.Game, matches []models.Match) {
	s.hub.BroadcastToGame(game.ID, tournament.Event{
		Type:    tournament.MessageStandingsUpdated,
		GameID:  game.ID,
		Payload: tournament.ComputeStandings(game.TeamsConfig, matches),
	})
}

func (s *tournamentService) loadGameMatches(ctx context.Context, gameID string) ([]models.Match, error) {
	if _, err := s.gameRepo.GetByID(ctx, s.db, gameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.matchRepo.ListByGame(ctx, s.db, gameID)
}

func equalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// mapTournamentError translates the pure package's validation errors into
// this package's sentinels so handlers map them uniformly.
func mapTournamentError(err error) error {
	switch {
	case errors.Is(err, tournament.ErrNegativeScore):
		return ErrInvalidScore
	case errors.Is(err, tournament.ErrUnknownMatch):
		return ErrUnknownMatch
	case errors.Is(err, tournament.ErrRoundNotFound), errors.Is(err, tournament.ErrInvalidRound):
		return ErrRoundNotFound
	case errors.Is(err, tournament.ErrMatchNotEditable):
		return ErrRoundRobinManaged
	case errors.Is(err, tournament.ErrNotEnoughTeams),
		errors.Is(err, tournament.ErrInvalidMatchLength),
		errors.Is(err, tournament.ErrInvalidFieldCount),
		errors.Is(err, tournament.ErrDuplicateTeamName):
		return ErrInvalidConfiguration
	default:
		return err
	}
}
