package postgres

import (
	"context"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccommodationRepository interface {
	Create(ctx context.Context, req *domain.AccommodationReq) (*domain.Accommodation, error)
	GetByID(ctx context.Context, id int64) (*domain.Accommodation, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Accommodation, error)
	Update(ctx context.Context, id int64, patch domain.AccommodationPatch) (*domain.Accommodation, error)
	Delete(ctx context.Context, id int64) error
}

type accommodationRepository struct {
	pool *pgxpool.Pool
}

func NewAccommodationRepository(pool *pgxpool.Pool) AccommodationRepository {
	return &accommodationRepository{pool: pool}
}

const accommodationCols = `id, name, city, address, description, room_type,
weekly_rate_cents, currency, capacity, image_url, active, created_at, updated_at`

func scanAccommodation(row pgx.Row) (*domain.Accommodation, error) {
	var a domain.Accommodation
	err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.Address, &a.Description, &a.RoomType,
		&a.WeeklyRateCents, &a.Currency, &a.Capacity, &a.ImageURL, &a.Active,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accommodationRepository) Create(ctx context.Context, req *domain.AccommodationReq) (*domain.Accommodation, error) {
	const q = `
		INSERT INTO accommodations (name, city, address, description, room_type,
			weekly_rate_cents, currency, capacity, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, true))
		RETURNING ` + accommodationCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAccommodation(r.pool.QueryRow(ctx, q,
		req.Name, req.City, req.Address, req.Description, req.RoomType,
		req.WeeklyRateCents, req.Currency, req.Capacity, req.ImageURL, req.Active,
	))
}

func (r *accommodationRepository) GetByID(ctx context.Context, id int64) (*domain.Accommodation, error) {
	const q = `SELECT ` + accommodationCols + ` FROM accommodations WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAccommodation(r.pool.QueryRow(ctx, q, id))
}

func (r *accommodationRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Accommodation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + accommodationCols + ` FROM accommodations`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY name LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accommodations []domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(
			&a.ID, &a.Name, &a.City, &a.Address, &a.Description, &a.RoomType,
			&a.WeeklyRateCents, &a.Currency, &a.Capacity, &a.ImageURL, &a.Active,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accommodations = append(accommodations, a)
	}
	return accommodations, rows.Err()
}

func (r *accommodationRepository) Update(ctx context.Context, id int64, patch domain.AccommodationPatch) (*domain.Accommodation, error) {
	const q = `
		UPDATE accommodations
		SET
			name              = COALESCE($2, name),
			city              = COALESCE($3, city),
			address           = COALESCE($4, address),
			description       = COALESCE($5, description),
			room_type         = COALESCE($6, room_type),
			weekly_rate_cents = COALESCE($7, weekly_rate_cents),
			capacity          = COALESCE($8, capacity),
			image_url         = COALESCE($9, image_url),
			active            = COALESCE($10, active),
			updated_at        = now()
		WHERE id = $1
		RETURNING ` + accommodationCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAccommodation(r.pool.QueryRow(ctx, q, id,
		patch.Name, patch.City, patch.Address, patch.Description, patch.RoomType,
		patch.WeeklyRateCents, patch.Capacity, patch.ImageURL, patch.Active,
	))
}

func (r *accommodationRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM accommodations WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
