package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleAssignmentRepository defines persistence access for (email, role) rows.
type RoleAssignmentRepository interface {
	FindRolesByEmail(ctx context.Context, email string) ([]string, error)
	Create(ctx context.Context, email, role string) error
	DeleteByEmailAndRole(ctx context.Context, email, role string) error
}

type roleAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewRoleAssignmentRepository returns a Postgres-backed implementation.
func NewRoleAssignmentRepository(pool *pgxpool.Pool) RoleAssignmentRepository {
	return &roleAssignmentRepository{pool: pool}
}

// FindRolesByEmail returns the account's role names sorted ascending. An
// unknown email yields an empty slice, not an error.
func (r *roleAssignmentRepository) FindRolesByEmail(ctx context.Context, email string) ([]string, error) {
	const query = `SELECT role FROM role_assignments WHERE email=lower($1) ORDER BY role ASC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleAssignmentRepository) Create(ctx context.Context, email, role string) error {
	const query = `INSERT INTO role_assignments (email, role) VALUES (lower($1), $2)`
	_, err := r.pool.Exec(ctx, query, email, role)
	return err
}

func (r *roleAssignmentRepository) DeleteByEmailAndRole(ctx context.Context, email, role string) error {
	const query = `DELETE FROM role_assignments WHERE email=lower($1) AND role=$2`
	cmd, err := r.pool.Exec(ctx, query, email, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
