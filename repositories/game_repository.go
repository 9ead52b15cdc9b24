package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pitchside/matchday/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Game, error)
	UpdateMode(ctx context.Context, exec SQLExecutor, id string, mode models.GameMode) error
	SetCompleted(ctx context.Context, exec SQLExecutor, id string, mvpPlayerID *string) error
	UpdateCoverKey(ctx context.Context, exec SQLExecutor, id string, coverKey string) error
	UpdateCurrentPlayers(ctx context.Context, exec SQLExecutor, id string, count int) error
	ActivateDue(ctx context.Context, exec SQLExecutor) (int64, error)
}

type postgresGameRepository struct{}

func NewPostgresGameRepository() GameRepository {
	return &postgresGameRepository{}
}

const gameColumns = `id, title, location, start_time, end_time, status, mode,
       teams_config, mvp_player_id, current_players, cover_key, created_at`

func (r *postgresGameRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	var (
		game      models.Game
		teamsJSON []byte
	)
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&game.ID,
		&game.Title,
		&game.Location,
		&game.StartTime,
		&game.EndTime,
		&game.Status,
		&game.Mode,
		&teamsJSON,
		&game.MVPPlayerID,
		&game.CurrentPlayers,
		&game.CoverKey,
		&game.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game %s: %w", id, err)
	}
	if len(teamsJSON) > 0 {
		if err := json.Unmarshal(teamsJSON, &game.TeamsConfig); err != nil {
			return nil, fmt.Errorf("failed to decode teams_config for game %s: %w", id, err)
		}
	}
	return &game, nil
}

func (r *postgresGameRepository) UpdateMode(ctx context.Context, exec SQLExecutor, id string, mode models.GameMode) error {
	query := `UPDATE games SET mode = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, mode, id)
	if err != nil {
		return fmt.Errorf("failed to update mode for game %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) SetCompleted(ctx context.Context, exec SQLExecutor, id string, mvpPlayerID *string) error {
	query := `UPDATE games SET status = $1, mvp_player_id = $2 WHERE id = $3`
	result, err := exec.ExecContext(ctx, query, models.GameStatusCompleted, mvpPlayerID, id)
	if err != nil {
		return fmt.Errorf("failed to complete game %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateCoverKey(ctx context.Context, exec SQLExecutor, id string, coverKey string) error {
	query := `UPDATE games SET cover_key = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, coverKey, id)
	if err != nil {
		return fmt.Errorf("failed to update cover for game %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateCurrentPlayers(ctx context.Context, exec SQLExecutor, id string, count int) error {
	query := `UPDATE games SET current_players = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, count, id)
	if err != nil {
		return fmt.Errorf("failed to update player count for game %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

// ActivateDue flips scheduled games whose start time has passed to active.
// Completed and cancelled games are never touched.
func (r *postgresGameRepository) ActivateDue(ctx context.Context, exec SQLExecutor) (int64, error) {
	query := `UPDATE games SET status = $1 WHERE status = $2 AND start_time <= NOW()`
	result, err := exec.ExecContext(ctx, query, models.GameStatusActive, models.GameStatusScheduled)
	if err != nil {
		return 0, fmt.Errorf("failed to activate due games: %w", err)
	}
	return result.RowsAffected()
}
