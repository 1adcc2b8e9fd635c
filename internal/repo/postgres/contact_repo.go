package postgres

import (
	"context"
	"time"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository interface {
	Create(ctx context.Context, req *domain.ContactReq) (*domain.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactCols = `id, name, email, phone, subject, body, created_at`

func (r *contactRepository) Create(ctx context.Context, req *domain.ContactReq) (*domain.ContactMessage, error) {
	const q = `
		INSERT INTO contact_messages (name, email, phone, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.ContactMessage
	err := r.pool.QueryRow(ctx, q, req.Name, req.Email, req.Phone, req.Subject, req.Body).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + contactCols + ` FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
