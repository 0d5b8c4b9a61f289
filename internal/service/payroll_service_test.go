package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

type payrollFixture struct {
	service  *PayrollService
	accounts *mockAccountRepository
	payrolls *mockPayrollRepository
}

func newPayrollFixture(t *testing.T, employees ...string) *payrollFixture {
	t.Helper()
	assignments := newMockRoleAssignmentRepository()
	payrolls := newMockPayrollRepository()
	accounts := newMockAccountRepository(assignments, payrolls)
	for _, email := range employees {
		account := &domain.Account{Name: "John", Lastname: "Doe", Email: email, PasswordHash: "hash"}
		require.NoError(t, accounts.CreateWithRole(context.Background(), account, domain.RoleUser))
	}
	payrolls.mutations = 0
	return &payrollFixture{
		service:  NewPayrollService(payrolls, accounts),
		accounts: accounts,
		payrolls: payrolls,
	}
}

func TestPayrollService_Upload(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	resp, err := f.service.Upload(context.Background(), []dto.PayrollRecordRequest{
		{Employee: "john@acme.com", Period: "01-2024", Salary: 123456},
		{Employee: "john@acme.com", Period: "02-2024", Salary: 223456},
	})
	require.NoError(t, err)
	assert.Equal(t, "Added successfully!", resp.Status)
	assert.Equal(t, 2, f.payrolls.mutations)
}

func TestPayrollService_Upload_AccumulatesAllViolations(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	_, err := f.service.Upload(context.Background(), []dto.PayrollRecordRequest{
		{Employee: "john@acme.com", Period: "13-2024", Salary: 100},
		{Employee: "ghost@acme.com", Period: "01-2024", Salary: 100},
		{Employee: "john@acme.com", Period: "02-2024", Salary: -5},
	})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "payments[0]")
	assert.Contains(t, domainErr.Message, "payments[1]")
	assert.Contains(t, domainErr.Message, "payments[2]")
	assert.Contains(t, domainErr.Message, " && ")
	assert.Zero(t, f.payrolls.mutations)
}

func TestPayrollService_Upload_RejectsDuplicatePeriodInPayload(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	_, err := f.service.Upload(context.Background(), []dto.PayrollRecordRequest{
		{Employee: "john@acme.com", Period: "01-2024", Salary: 100},
		{Employee: "john@acme.com", Period: "01-2024", Salary: 200},
	})
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Message, "duplicate employee and period")
	assert.Zero(t, f.payrolls.mutations)
}

func TestPayrollService_Upload_EmptyPayload(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.service.Upload(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestPayrollService_UpdateSalary(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")
	_, err := f.service.Upload(context.Background(), []dto.PayrollRecordRequest{
		{Employee: "john@acme.com", Period: "01-2024", Salary: 100000},
	})
	require.NoError(t, err)

	resp, err := f.service.UpdateSalary(context.Background(), dto.PayrollRecordRequest{
		Employee: "john@acme.com", Period: "01-2024", Salary: 150000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated successfully!", resp.Status)

	account, err := f.accounts.GetByEmail(context.Background(), "john@acme.com")
	require.NoError(t, err)
	records, err := f.service.GetForEmployee(context.Background(), account, "01-2024")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1500 dollar(s), 0 cent(s)", records[0].Salary)
}

func TestPayrollService_UpdateSalary_UnknownRecord(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	_, err := f.service.UpdateSalary(context.Background(), dto.PayrollRecordRequest{
		Employee: "john@acme.com", Period: "01-2024", Salary: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "PAYROLL_NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestPayrollService_GetForEmployee_AllPeriodsNewestFirst(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")
	_, err := f.service.Upload(context.Background(), []dto.PayrollRecordRequest{
		{Employee: "john@acme.com", Period: "01-2024", Salary: 100000},
		{Employee: "john@acme.com", Period: "03-2024", Salary: 300000},
		{Employee: "john@acme.com", Period: "02-2024", Salary: 200000},
	})
	require.NoError(t, err)

	account, err := f.accounts.GetByEmail(context.Background(), "john@acme.com")
	require.NoError(t, err)
	records, err := f.service.GetForEmployee(context.Background(), account, "")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "March-2024", records[0].Period)
	assert.Equal(t, "February-2024", records[1].Period)
	assert.Equal(t, "January-2024", records[2].Period)
	assert.Equal(t, "John", records[0].Name)
	assert.Equal(t, "Doe", records[0].Lastname)
}

func TestPayrollService_GetForEmployee_MissingPeriodIsEmpty(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	account, err := f.accounts.GetByEmail(context.Background(), "john@acme.com")
	require.NoError(t, err)
	records, err := f.service.GetForEmployee(context.Background(), account, "05-2030")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPayrollService_GetForEmployee_BadPeriod(t *testing.T) {
	f := newPayrollFixture(t, "john@acme.com")

	account, err := f.accounts.GetByEmail(context.Background(), "john@acme.com")
	require.NoError(t, err)
	_, err = f.service.GetForEmployee(context.Background(), account, "2024-01")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
