package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	// CreateSubmission inserts the reservation and its document rows in one
	// transaction. On any failure nothing is persisted.
	CreateSubmission(ctx context.Context, res *domain.Reservation, docs []*domain.Document) (*domain.Reservation, []domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter, limit, offset int) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error)
	Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (bool, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationCols = `id, user_id, accommodation_id, status,
check_in, check_out, weeks, total_price_cents,
has_dietary_restriction, dietary_details, has_health_restriction, health_details,
emergency_name, emergency_relation, emergency_phone, emergency_email,
wants_extra_night, extra_night_kind, extra_night_qty, extra_night_dates,
form_submitted, created_at, updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var rv domain.Reservation
	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.AccommodationID, &rv.Status,
		&rv.CheckIn, &rv.CheckOut, &rv.Weeks, &rv.TotalPriceCents,
		&rv.HasDietaryRestriction, &rv.DietaryDetails, &rv.HasHealthRestriction, &rv.HealthDetails,
		&rv.EmergencyName, &rv.EmergencyRelation, &rv.EmergencyPhone, &rv.EmergencyEmail,
		&rv.WantsExtraNight, &rv.ExtraNightKind, &rv.ExtraNightQty, &rv.ExtraNightDates,
		&rv.FormSubmitted, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reservationRepository) CreateSubmission(ctx context.Context, res *domain.Reservation, docs []*domain.Document) (*domain.Reservation, []domain.Document, error) {
	const insertReservation = `INSERT INTO reservations (
		user_id, accommodation_id, status,
		check_in, check_out, weeks, total_price_cents,
		has_dietary_restriction, dietary_details, has_health_restriction, health_details,
		emergency_name, emergency_relation, emergency_phone, emergency_email,
		wants_extra_night, extra_night_kind, extra_night_qty, extra_night_dates,
		form_submitted
	) VALUES ($1,$2,'pending',$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,true)
	RETURNING ` + reservationCols

	const insertDocument = `INSERT INTO documents (user_id, reservation_id, type, file_name, storage_path, status)
	VALUES ($1, $2, $3, $4, $5, 'awaiting')
	RETURNING ` + documentCols

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := scanReservation(tx.QueryRow(ctx, insertReservation,
		res.UserID, res.AccommodationID,
		res.CheckIn, res.CheckOut, res.Weeks, res.TotalPriceCents,
		res.HasDietaryRestriction, res.DietaryDetails, res.HasHealthRestriction, res.HealthDetails,
		res.EmergencyName, res.EmergencyRelation, res.EmergencyPhone, res.EmergencyEmail,
		res.WantsExtraNight, res.ExtraNightKind, res.ExtraNightQty, res.ExtraNightDates,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	createdDocs := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		d, err := scanDocument(tx.QueryRow(ctx, insertDocument,
			doc.UserID, created.ID, doc.Type, doc.FileName, doc.StoragePath,
		))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to insert %s document: %w", doc.Type, err)
		}
		createdDocs = append(createdDocs, *d)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit submission: %w", err)
	}
	return created, createdDocs, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReservation(r.pool.QueryRow(ctx, q, id))
}

func (r *reservationRepository) List(ctx context.Context, filter domain.ReservationFilter, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + reservationCols + ` FROM reservations WHERE true`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		q += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.AccommodationID != nil {
		args = append(args, *filter.AccommodationID)
		q += fmt.Sprintf(` AND accommodation_id = $%d`, len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		q += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	args = append(args, limit, offset)
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Reservation, error) {
	return r.List(ctx, domain.ReservationFilter{UserID: &userID}, limit, offset)
}

func (r *reservationRepository) Update(ctx context.Context, id int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	const q = `
		UPDATE reservations
		SET
			status     = COALESCE($2, status),
			check_in   = COALESCE($3, check_in),
			check_out  = COALESCE($4, check_out),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + reservationCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReservation(r.pool.QueryRow(ctx, q, id, patch.Status, patch.CheckIn, patch.CheckOut))
}

func (r *reservationRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE reservations SET status='canceled', updated_at=now() WHERE id=$1 AND status NOT IN ('canceled','completed')`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var rv domain.Reservation
		if err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.AccommodationID, &rv.Status,
			&rv.CheckIn, &rv.CheckOut, &rv.Weeks, &rv.TotalPriceCents,
			&rv.HasDietaryRestriction, &rv.DietaryDetails, &rv.HasHealthRestriction, &rv.HealthDetails,
			&rv.EmergencyName, &rv.EmergencyRelation, &rv.EmergencyPhone, &rv.EmergencyEmail,
			&rv.WantsExtraNight, &rv.ExtraNightKind, &rv.ExtraNightQty, &rv.ExtraNightDates,
			&rv.FormSubmitted, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, rv)
	}
	return reservations, rows.Err()
}
