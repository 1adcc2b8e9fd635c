package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter, limit, offset int) ([]domain.Document, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Document, error)
	Review(ctx context.Context, id int64, status domain.DocumentStatus, note string) (*domain.Document, error)
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

const documentCols = `id, user_id, reservation_id, type, file_name, storage_path, status, review_note, created_at, updated_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.ID, &d.UserID, &d.ReservationID, &d.Type, &d.FileName,
		&d.StoragePath, &d.Status, &d.ReviewNote, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	const q = `
		INSERT INTO documents (user_id, reservation_id, type, file_name, storage_path, status)
		VALUES ($1, $2, $3, $4, $5, 'awaiting')
		RETURNING ` + documentCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanDocument(r.pool.QueryRow(ctx, q,
		doc.UserID, doc.ReservationID, doc.Type, doc.FileName, doc.StoragePath,
	))
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	const q = `SELECT ` + documentCols + ` FROM documents WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanDocument(r.pool.QueryRow(ctx, q, id))
}

func (r *documentRepository) List(ctx context.Context, filter domain.DocumentFilter, limit, offset int) ([]domain.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + documentCols + ` FROM documents WHERE true`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		q += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		q += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		q += fmt.Sprintf(` AND type = $%d`, len(args))
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

	var documents []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ReservationID, &d.Type, &d.FileName,
			&d.StoragePath, &d.Status, &d.ReviewNote, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *documentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Document, error) {
	return r.List(ctx, domain.DocumentFilter{UserID: &userID}, limit, offset)
}

func (r *documentRepository) Review(ctx context.Context, id int64, status domain.DocumentStatus, note string) (*domain.Document, error) {
	const q = `
		UPDATE documents
		SET status = $2, review_note = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + documentCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanDocument(r.pool.QueryRow(ctx, q, id, status, note))
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
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
