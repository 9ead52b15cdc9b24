package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pitchside/matchday/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchGameInvalid = errors.New("match references an unknown game")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	ListByGame(ctx context.Context, exec SQLExecutor, gameID string) ([]models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id string, homeScore, awayScore int, status models.MatchStatus, isFinal bool) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresMatchRepository struct{}

func NewPostgresMatchRepository() MatchRepository {
	return &postgresMatchRepository{}
}

const matchColumns = `id, game_id, home_team, away_team, home_score, away_score,
       round_number, status, is_final, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(id, game_id, home_team, away_team, home_score, away_score, round_number, status, is_final)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := exec.QueryRowContext(ctx, query,
		match.ID,
		match.GameID,
		match.HomeTeam,
		match.AwayTeam,
		match.HomeScore,
		match.AwayScore,
		match.RoundNumber,
		match.Status,
		match.IsFinal,
	).Scan(&match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.GameID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.HomeScore,
		&match.AwayScore,
		&match.RoundNumber,
		&match.Status,
		&match.IsFinal,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %s: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByGame(ctx context.Context, exec SQLExecutor, gameID string) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE game_id = $1
		ORDER BY round_number ASC, created_at ASC, id ASC`

	rows, err := exec.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for game %s: %w", gameID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		if err := rows.Scan(
			&match.ID,
			&match.GameID,
			&match.HomeTeam,
			&match.AwayTeam,
			&match.HomeScore,
			&match.AwayScore,
			&match.RoundNumber,
			&match.Status,
			&match.IsFinal,
			&match.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id string, homeScore, awayScore int, status models.MatchStatus, isFinal bool) error {
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2, status = $3, is_final = $4
		WHERE id = $5`

	result, err := exec.ExecContext(ctx, query, homeScore, awayScore, status, isFinal, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Constraint == "matches_game_id_fkey" {
			return ErrMatchGameInvalid
		}
	}
	return err
}
