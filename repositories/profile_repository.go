package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pitchside/matchday/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Profile, error)
	AdjustMVPAwards(ctx context.Context, exec SQLExecutor, id string, delta int) error
}

type postgresProfileRepository struct{}

func NewPostgresProfileRepository() ProfileRepository {
	return &postgresProfileRepository{}
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Profile, error) {
	query := `SELECT id, name, avatar_url, mvp_awards, created_at FROM profiles WHERE id = $1`

	profile := &models.Profile{}
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.AvatarURL,
		&profile.MVPAwards,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile %s: %w", id, err)
	}
	return profile, nil
}

// AdjustMVPAwards moves the award counter by delta, floored at zero, in one
// statement so a decrement can never race the counter negative.
func (r *postgresProfileRepository) AdjustMVPAwards(ctx context.Context, exec SQLExecutor, id string, delta int) error {
	query := `UPDATE profiles SET mvp_awards = GREATEST(mvp_awards + $1, 0) WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust mvp awards for profile %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}
