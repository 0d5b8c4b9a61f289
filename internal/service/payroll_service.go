package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

const payrollAddedMsg = "Added successfully!"
const payrollUpdatedMsg = "Updated successfully!"

// PayrollService manages salary records uploaded by accountants and read by
// employees.
type PayrollService struct {
	payrolls repository.PayrollRepository
	accounts repository.AccountRepository
}

// NewPayrollService builds the service.
func NewPayrollService(payrolls repository.PayrollRepository, accounts repository.AccountRepository) *PayrollService {
	return &PayrollService{payrolls: payrolls, accounts: accounts}
}

// Upload validates the whole batch first, accumulating every violation, then
// inserts all records in one transaction.
func (s *PayrollService) Upload(ctx context.Context, records []dto.PayrollRecordRequest) (*dto.PayrollUploadResponse, error) {
	if len(records) == 0 {
		return nil, apperrors.NewValidationError("payload must contain at least one record", nil)
	}

	payrolls := make([]domain.Payroll, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var violations []string

	for i, record := range records {
		payroll, errs := s.checkRecord(ctx, i, record)
		violations = append(violations, errs...)
		if payroll == nil {
			continue
		}
		key := strings.ToLower(record.Employee) + "|" + payroll.Period.Format("2006-01")
		if _, dup := seen[key]; dup {
			violations = append(violations, fmt.Sprintf("payments[%d]: duplicate employee and period in payload", i))
			continue
		}
		seen[key] = struct{}{}
		payrolls = append(payrolls, *payroll)
	}

	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(strings.Join(violations, " && "), nil)
	}

	if err := s.payrolls.CreateBatch(ctx, payrolls); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &dto.PayrollUploadResponse{Status: payrollAddedMsg}, nil
}

// UpdateSalary changes the salary of one existing record.
func (s *PayrollService) UpdateSalary(ctx context.Context, record dto.PayrollRecordRequest) (*dto.PayrollUploadResponse, error) {
	payroll, errs := s.checkRecord(ctx, 0, record)
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(strings.Join(errs, " && "), nil)
	}

	if err := s.payrolls.Update(ctx, payroll); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("PAYROLL_NOT_FOUND", "payroll record not found", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return &dto.PayrollUploadResponse{Status: payrollUpdatedMsg}, nil
}

// GetForEmployee returns the employee's own payroll, one record when a period
// is given, all records newest first otherwise.
func (s *PayrollService) GetForEmployee(ctx context.Context, account *domain.Account, rawPeriod string) ([]dto.PayrollResponse, error) {
	if rawPeriod != "" {
		period, err := domain.ParsePeriod(rawPeriod)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		payroll, err := s.payrolls.FindByEmployeeAndPeriod(ctx, account.Email, period)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return []dto.PayrollResponse{}, nil
			}
			return nil, apperrors.MapError(err)
		}
		return []dto.PayrollResponse{toPayrollResponse(account, *payroll)}, nil
	}

	payrolls, err := s.payrolls.FindByEmployee(ctx, account.Email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	responses := make([]dto.PayrollResponse, 0, len(payrolls))
	for _, payroll := range payrolls {
		responses = append(responses, toPayrollResponse(account, payroll))
	}
	return responses, nil
}

// checkRecord validates one uploaded record: shape, period format and the
// employee's existence. Returns the parsed payroll when all checks pass.
func (s *PayrollService) checkRecord(ctx context.Context, index int, record dto.PayrollRecordRequest) (*domain.Payroll, []string) {
	var violations []string
	if err := dto.Validate(record); err != nil {
		violations = append(violations, fmt.Sprintf("payments[%d]: %s", index, err.Error()))
	}

	var period time.Time
	if record.Period != "" {
		parsed, err := domain.ParsePeriod(record.Period)
		if err != nil {
			violations = append(violations, fmt.Sprintf("payments[%d]: %s", index, err.Error()))
		} else {
			period = parsed
		}
	}

	if record.Employee != "" {
		if _, err := s.accounts.GetByEmail(ctx, record.Employee); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				violations = append(violations, fmt.Sprintf("payments[%d]: employee not found", index))
			} else {
				violations = append(violations, fmt.Sprintf("payments[%d]: %s", index, err.Error()))
			}
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &domain.Payroll{
		Employee:    strings.ToLower(record.Employee),
		Period:      period,
		SalaryCents: record.Salary,
	}, nil
}

func toPayrollResponse(account *domain.Account, payroll domain.Payroll) dto.PayrollResponse {
	return dto.PayrollResponse{
		Name:     account.Name,
		Lastname: account.Lastname,
		Period:   domain.FormatPeriod(payroll.Period),
		Salary:   domain.FormatSalary(payroll.SalaryCents),
	}
}
