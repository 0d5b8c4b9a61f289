package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	CreateWithRole(ctx context.Context, account *domain.Account, role string) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
	UpdatePasswordHash(ctx context.Context, email, hash string) error
	UpdateLocked(ctx context.Context, email string, locked bool) error
	DeleteCascade(ctx context.Context, email string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

// CreateWithRole inserts the account and its initial role assignment in one
// transaction, so a signed-up account is never visible without a role.
func (r *accountRepository) CreateWithRole(ctx context.Context, account *domain.Account, role string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertAccount = `
        INSERT INTO accounts (name, lastname, email, password_hash, locked)
        VALUES ($1, $2, lower($3), $4, $5)
        RETURNING id, email, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertAccount,
		account.Name,
		account.Lastname,
		account.Email,
		account.PasswordHash,
		account.Locked,
	).Scan(&account.ID, &account.Email, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return err
	}

	const insertRole = `INSERT INTO role_assignments (email, role) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, insertRole, account.Email, role); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, name, lastname, email, password_hash, locked, created_at, updated_at
        FROM accounts WHERE email=lower($1)`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Lastname,
		&account.Email,
		&account.PasswordHash,
		&account.Locked,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

// List returns all accounts ascending by id.
func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT id, name, lastname, email, password_hash, locked, created_at, updated_at
        FROM accounts ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Lastname,
			&account.Email,
			&account.PasswordHash,
			&account.Locked,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	const query = `UPDATE accounts SET password_hash=$1, updated_at=NOW() WHERE email=lower($2)`
	cmd, err := r.pool.Exec(ctx, query, hash, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) UpdateLocked(ctx context.Context, email string, locked bool) error {
	const query = `UPDATE accounts SET locked=$1, updated_at=NOW() WHERE email=lower($2)`
	cmd, err := r.pool.Exec(ctx, query, locked, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCascade removes the account's role assignments, payroll rows and the
// account row itself in one transaction, children before parent.
func (r *accountRepository) DeleteCascade(ctx context.Context, email string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM role_assignments WHERE email=lower($1)`, email); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payrolls WHERE employee=lower($1)`, email); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM accounts WHERE email=lower($1)`, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
