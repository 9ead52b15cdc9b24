package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pitchside/matchday/models"
	"github.com/pitchside/matchday/repositories"
	"github.com/pitchside/matchday/tournament"
)

// ScheduleRequest carries the knobs for fixture generation. Zero
// DurationMinutes means "derive from the game's start and end time".
type ScheduleRequest struct {
	MatchLengthMinutes int `json:"match_length_minutes"`
	WarmupMinutes      int `json:"warmup_minutes"`
	Fields             int `json:"fields"`
	DurationMinutes    int `json:"duration_minutes"`
}

// SchedulePreview is a generated schedule that has not been persisted.
type SchedulePreview struct {
	Rounds     []tournament.ScheduledRound `json:"rounds"`
	TotalSlots int                         `json:"total_slots"`
	Teams      []string                    `json:"teams"`
}

type ScheduleService interface {
	Preview(ctx context.Context, gameID string, req ScheduleRequest) (*SchedulePreview, error)
	Save(ctx context.Context, gameID string, req ScheduleRequest) ([]models.Match, error)
}

type scheduleService struct {
	db        *sql.DB
	gameRepo  repositories.GameRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewScheduleService(db *sql.DB, gameRepo repositories.GameRepository, matchRepo repositories.MatchRepository, logger *slog.Logger) ScheduleService {
	return &scheduleService{
		db:        db,
		gameRepo:  gameRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *scheduleService) Preview(ctx context.Context, gameID string, req ScheduleRequest) (*SchedulePreview, error) {
	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	rounds, err := s.generate(game, req)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, r := range rounds {
		total += len(r.Pairings)
	}

	return &SchedulePreview{
		Rounds:     rounds,
		TotalSlots: total,
		Teams:      models.TeamNames(game.TeamsConfig),
	}, nil
}

func (s *scheduleService) Save(ctx context.Context, gameID string, req ScheduleRequest) ([]models.Match, error) {
	var created []models.Match

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		game, err := s.gameRepo.GetByID(ctx, tx, gameID)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		existing, err := s.matchRepo.ListByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		for _, m := range existing {
			if m.IsTournament() {
				return ErrScheduleExists
			}
		}

		rounds, err := s.generate(game, req)
		if err != nil {
			return err
		}

		for _, round := range rounds {
			for _, p := range round.Pairings {
				match := &models.Match{
					ID:          uuid.NewString(),
					GameID:      gameID,
					HomeTeam:    p.Home,
					AwayTeam:    p.Away,
					RoundNumber: round.Round,
					Status:      models.MatchStatusScheduled,
				}
				if err := s.matchRepo.Create(ctx, tx, match); err != nil {
					return err
				}
				created = append(created, *match)
			}
		}

		return s.gameRepo.UpdateMode(ctx, tx, gameID, models.GameModeRoundRobin)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule saved",
		slog.String("game_id", gameID),
		slog.Int("matches", len(created)))
	return created, nil
}

func (s *scheduleService) generate(game *models.Game, req ScheduleRequest) ([]tournament.ScheduledRound, error) {
	if len(game.TeamsConfig) < 2 {
		return nil, ErrTeamsNotConfigured
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = game.DurationMinutes()
	}

	cfg := tournament.FixtureConfig{
		DurationMinutes:    duration,
		WarmupMinutes:      req.WarmupMinutes,
		MatchLengthMinutes: req.MatchLengthMinutes,
		Fields:             req.Fields,
	}

	rounds, err := tournament.GenerateFixtures(game.TeamsConfig, cfg)
	if err != nil {
		return nil, mapTournamentError(err)
	}
	return rounds, nil
}
