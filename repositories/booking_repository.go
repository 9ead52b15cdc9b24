package repositories

import (
	"context"
	"fmt"

	"github.com/pitchside/matchday/models"
)

type BookingRepository interface {
	ListByGame(ctx context.Context, exec SQLExecutor, gameID string) ([]models.Booking, error)
	ClearWinners(ctx context.Context, exec SQLExecutor, gameID string) error
	SetWinnersByTeam(ctx context.Context, exec SQLExecutor, gameID, team string) (int64, error)
	CountPaidByGame(ctx context.Context, exec SQLExecutor, gameID string) (int, error)
}

type postgresBookingRepository struct{}

func NewPostgresBookingRepository() BookingRepository {
	return &postgresBookingRepository{}
}

func (r *postgresBookingRepository) ListByGame(ctx context.Context, exec SQLExecutor, gameID string) ([]models.Booking, error) {
	query := `
		SELECT id, game_id, user_id, player_name, team_assignment, status, is_winner, created_at
		FROM bookings
		WHERE game_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := exec.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for game %s: %w", gameID, err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID,
			&b.GameID,
			&b.UserID,
			&b.PlayerName,
			&b.TeamAssignment,
			&b.Status,
			&b.IsWinner,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during booking rows iteration: %w", err)
	}
	return bookings, nil
}

// ClearWinners wipes the win flag for every booking of the game. Finalization
// always clears before setting so re-running it cannot leave stale winners.
func (r *postgresBookingRepository) ClearWinners(ctx context.Context, exec SQLExecutor, gameID string) error {
	query := `UPDATE bookings SET is_winner = FALSE WHERE game_id = $1`
	if _, err := exec.ExecContext(ctx, query, gameID); err != nil {
		return fmt.Errorf("failed to clear winners for game %s: %w", gameID, err)
	}
	return nil
}

func (r *postgresBookingRepository) SetWinnersByTeam(ctx context.Context, exec SQLExecutor, gameID, team string) (int64, error) {
	query := `UPDATE bookings SET is_winner = TRUE WHERE game_id = $1 AND team_assignment = $2`
	result, err := exec.ExecContext(ctx, query, gameID, team)
	if err != nil {
		return 0, fmt.Errorf("failed to set winners for game %s team %q: %w", gameID, team, err)
	}
	return result.RowsAffected()
}

func (r *postgresBookingRepository) CountPaidByGame(ctx context.Context, exec SQLExecutor, gameID string) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE game_id = $1 AND status = $2`
	var count int
	if err := exec.QueryRowContext(ctx, query, gameID, models.BookingStatusPaid).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count paid bookings for game %s: %w", gameID, err)
	}
	return count, nil
}
