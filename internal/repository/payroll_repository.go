package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// PayrollRepository defines persistence access for salary records.
type PayrollRepository interface {
	CreateBatch(ctx context.Context, payrolls []domain.Payroll) error
	Update(ctx context.Context, payroll *domain.Payroll) error
	FindByEmployee(ctx context.Context, employee string) ([]domain.Payroll, error)
	FindByEmployeeAndPeriod(ctx context.Context, employee string, period time.Time) (*domain.Payroll, error)
}

type payrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository returns a Postgres-backed implementation.
func NewPayrollRepository(pool *pgxpool.Pool) PayrollRepository {
	return &payrollRepository{pool: pool}
}

// CreateBatch inserts all records in one transaction; either every record
// lands or none does.
func (r *payrollRepository) CreateBatch(ctx context.Context, payrolls []domain.Payroll) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO payrolls (employee, period, salary_cents)
        VALUES (lower($1), $2, $3)`

	for _, payroll := range payrolls {
		if _, err := tx.Exec(ctx, query, payroll.Employee, payroll.Period, payroll.SalaryCents); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *payrollRepository) Update(ctx context.Context, payroll *domain.Payroll) error {
	const query = `
        UPDATE payrolls SET salary_cents=$1, updated_at=NOW()
        WHERE employee=lower($2) AND period=$3`

	cmd, err := r.pool.Exec(ctx, query, payroll.SalaryCents, payroll.Employee, payroll.Period)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindByEmployee returns all records for an employee, newest period first.
func (r *payrollRepository) FindByEmployee(ctx context.Context, employee string) ([]domain.Payroll, error) {
	const query = `
        SELECT id, employee, period, salary_cents, created_at, updated_at
        FROM payrolls WHERE employee=lower($1) ORDER BY period DESC`

	rows, err := r.pool.Query(ctx, query, employee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []domain.Payroll
	for rows.Next() {
		var payroll domain.Payroll
		if err := rows.Scan(
			&payroll.ID,
			&payroll.Employee,
			&payroll.Period,
			&payroll.SalaryCents,
			&payroll.CreatedAt,
			&payroll.UpdatedAt,
		); err != nil {
			return nil, err
		}
		payrolls = append(payrolls, payroll)
	}
	return payrolls, rows.Err()
}

func (r *payrollRepository) FindByEmployeeAndPeriod(ctx context.Context, employee string, period time.Time) (*domain.Payroll, error) {
	const query = `
        SELECT id, employee, period, salary_cents, created_at, updated_at
        FROM payrolls WHERE employee=lower($1) AND period=$2`

	var payroll domain.Payroll
	if err := r.pool.QueryRow(ctx, query, employee, period).Scan(
		&payroll.ID,
		&payroll.Employee,
		&payroll.Period,
		&payroll.SalaryCents,
		&payroll.CreatedAt,
		&payroll.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payroll, nil
}
