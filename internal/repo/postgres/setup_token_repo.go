package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupTokenRepository stores one-shot password-setup tokens mailed to newly
// created identities.
type SetupTokenRepository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	// Consume deletes the token and returns its user ID, or 0 when the token
	// is unknown or expired.
	Consume(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type setupTokenRepository struct {
	pool *pgxpool.Pool
}

func NewSetupTokenRepository(pool *pgxpool.Pool) SetupTokenRepository {
	return &setupTokenRepository{pool: pool}
}

func (r *setupTokenRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const q = `
		INSERT INTO password_setup_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token = $2, expires_at = $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, userID, token, expiresAt)
	return err
}

func (r *setupTokenRepository) Consume(ctx context.Context, token string) (int64, error) {
	const q = `DELETE FROM password_setup_tokens WHERE token = $1 AND expires_at > now() RETURNING user_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var userID int64
	err := r.pool.QueryRow(ctx, q, token).Scan(&userID)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *setupTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM password_setup_tokens WHERE expires_at < now()`
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
