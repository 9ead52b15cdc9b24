package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pitchside/matchday/models"
	"github.com/pitchside/matchday/repositories"
)

// ManualResultRequest records a one-off result outside of a generated
// schedule. Manual matches are stored already completed.
type ManualResultRequest struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

type MatchService interface {
	List(ctx context.Context, gameID string) ([]models.Match, error)
	RecordManual(ctx context.Context, gameID string, req ManualResultRequest) (*models.Match, error)
	Delete(ctx context.Context, gameID, matchID string) error
}

type matchService struct {
	db        *sql.DB
	gameRepo  repositories.GameRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewMatchService(db *sql.DB, gameRepo repositories.GameRepository, matchRepo repositories.MatchRepository, logger *slog.Logger) MatchService {
	return &matchService{
		db:        db,
		gameRepo:  gameRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *matchService) List(ctx context.Context, gameID string) ([]models.Match, error) {
	if _, err := s.gameRepo.GetByID(ctx, s.db, gameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.matchRepo.ListByGame(ctx, s.db, gameID)
}

func (s *matchService) RecordManual(ctx context.Context, gameID string, req ManualResultRequest) (*models.Match, error) {
	if req.HomeScore < 0 || req.AwayScore < 0 {
		return nil, ErrInvalidScore
	}

	var match *models.Match

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Mode == models.GameModeRoundRobin {
			return ErrRoundRobinManaged
		}
		if !models.HasTeam(game.TeamsConfig, req.HomeTeam) || !models.HasTeam(game.TeamsConfig, req.AwayTeam) {
			return ErrUnknownTeam
		}

		match = &models.Match{
			ID:          uuid.NewString(),
			GameID:      gameID,
			HomeTeam:    req.HomeTeam,
			AwayTeam:    req.AwayTeam,
			HomeScore:   req.HomeScore,
			AwayScore:   req.AwayScore,
			RoundNumber: models.ManualRound,
			Status:      models.MatchStatusCompleted,
			IsFinal:     true,
		}
		if err := match.Validate(); err != nil {
			return mapMatchError(err)
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return err
		}
		return s.gameRepo.UpdateMode(ctx, tx, gameID, models.GameModeManual)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("manual result recorded",
		slog.String("game_id", gameID),
		slog.String("match_id", match.ID))
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, gameID, matchID string) error {
	return runInTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByID(ctx, tx, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if match.GameID != gameID {
			return ErrMatchNotFound
		}
		if match.IsTournament() {
			return ErrRoundRobinManaged
		}
		return s.matchRepo.Delete(ctx, tx, matchID)
	})
}

func mapMatchError(err error) error {
	switch {
	case errors.Is(err, models.ErrMatchSameTeam), errors.Is(err, models.ErrMatchTeamRequired):
		return ErrInvalidConfiguration
	case errors.Is(err, models.ErrMatchNegativeScore):
		return ErrInvalidScore
	default:
		return err
	}
}
