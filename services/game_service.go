package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/google/uuid"
	"github.com/pitchside/matchday/models"
	"github.com/pitchside/matchday/repositories"
	"github.com/pitchside/matchday/storage"
	"github.com/pitchside/matchday/tournament"
	"golang.org/x/sync/errgroup"
)

// GameDetail aggregates everything the game page renders in one payload.
type GameDetail struct {
	Game       *models.Game          `json:"game"`
	Matches    []models.Match        `json:"matches"`
	Bookings   []models.Booking      `json:"bookings"`
	Standings  []models.StandingRow  `json:"standings"`
	RoundState tournament.RoundState `json:"round_state"`
	CoverURL   string                `json:"cover_url,omitempty"`
}

type GameService interface {
	Detail(ctx context.Context, gameID string) (*GameDetail, error)
	UploadCover(ctx context.Context, gameID, contentType string, file io.Reader) (string, error)
	SyncPlayerCount(ctx context.Context, gameID string) (int, error)
	ActivateDueGames(ctx context.Context) (int64, error)
}

type gameService struct {
	db          *sql.DB
	gameRepo    repositories.GameRepository
	matchRepo   repositories.MatchRepository
	bookingRepo repositories.BookingRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	bookingRepo repositories.BookingRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:          db,
		gameRepo:    gameRepo,
		matchRepo:   matchRepo,
		bookingRepo: bookingRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *gameService) Detail(ctx context.Context, gameID string) (*GameDetail, error) {
	var (
		game     *models.Game
		matches  []models.Match
		bookings []models.Booking
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		game, err = s.gameRepo.GetByID(gCtx, s.db, gameID)
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByGame(gCtx, s.db, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookingRepo.ListByGame(gCtx, s.db, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &GameDetail{
		Game:       game,
		Matches:    matches,
		Bookings:   bookings,
		Standings:  tournament.ComputeStandings(game.TeamsConfig, matches),
		RoundState: tournament.DeriveRoundState(matches),
	}
	if game.CoverKey != nil && s.uploader != nil {
		detail.CoverURL = s.uploader.GetPublicURL(*game.CoverKey)
	}
	return detail, nil
}

func (s *gameService) UploadCover(ctx context.Context, gameID, contentType string, file io.Reader) (string, error) {
	if s.uploader == nil {
		return "", errors.New("file storage is not configured")
	}

	game, err := s.gameRepo.GetByID(ctx, s.db, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return "", ErrGameNotFound
		}
		return "", err
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return "", ErrInvalidConfiguration
	}

	key := fmt.Sprintf("games/%s/cover-%s%s", gameID, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload game cover: %w", err)
	}

	if err := s.gameRepo.UpdateCoverKey(ctx, s.db, gameID, result.Key); err != nil {
		return "", err
	}

	if game.CoverKey != nil && *game.CoverKey != result.Key {
		if err := s.uploader.Delete(ctx, *game.CoverKey); err != nil {
			s.logger.Warn("failed to delete previous game cover",
				slog.String("game_id", gameID),
				slog.String("key", *game.CoverKey),
				slog.Any("error", err))
		}
	}

	return result.Location, nil
}

func (s *gameService) SyncPlayerCount(ctx context.Context, gameID string) (int, error) {
	var count int

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		count, err = s.bookingRepo.CountPaidByGame(ctx, tx, gameID)
		if err != nil {
			return err
		}
		return s.gameRepo.UpdateCurrentPlayers(ctx, tx, gameID, count)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return 0, ErrGameNotFound
		}
		return 0, err
	}
	return count, nil
}

func (s *gameService) ActivateDueGames(ctx context.Context) (int64, error) {
	return s.gameRepo.ActivateDue(ctx, s.db)
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
