package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// SecurityEventRepository defines persistence access for the audit log.
type SecurityEventRepository interface {
	Create(ctx context.Context, event *domain.SecurityEvent) error
	List(ctx context.Context) ([]domain.SecurityEvent, error)
}

type securityEventRepository struct {
	pool *pgxpool.Pool
}

// NewSecurityEventRepository returns a Postgres-backed implementation.
func NewSecurityEventRepository(pool *pgxpool.Pool) SecurityEventRepository {
	return &securityEventRepository{pool: pool}
}

func (r *securityEventRepository) Create(ctx context.Context, event *domain.SecurityEvent) error {
	const query = `
        INSERT INTO security_events (occurred, action, subject, object, path)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		event.Occurred,
		event.Action,
		event.Subject,
		event.Object,
		event.Path,
	).Scan(&event.ID)
}

// List returns all events ascending by id.
func (r *securityEventRepository) List(ctx context.Context) ([]domain.SecurityEvent, error) {
	const query = `
        SELECT id, occurred, action, subject, object, path
        FROM security_events ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eventRows []domain.SecurityEvent
	for rows.Next() {
		var event domain.SecurityEvent
		if err := rows.Scan(
			&event.ID,
			&event.Occurred,
			&event.Action,
			&event.Subject,
			&event.Object,
			&event.Path,
		); err != nil {
			return nil, err
		}
		eventRows = append(eventRows, event)
	}
	return eventRows, rows.Err()
}
