package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
)

var errDuplicatePayroll = errors.New("duplicate employee and period")

// mockAccountRepository is an in-memory implementation of
// repository.AccountRepository for testing.
type mockAccountRepository struct {
	accounts  map[string]*domain.Account
	roles     *mockRoleAssignmentRepository
	payrolls  *mockPayrollRepository
	nextID    int64
	mutations int
}

func newMockAccountRepository(roles *mockRoleAssignmentRepository, payrolls *mockPayrollRepository) *mockAccountRepository {
	return &mockAccountRepository{
		accounts: make(map[string]*domain.Account),
		roles:    roles,
		payrolls: payrolls,
		nextID:   1,
	}
}

func (m *mockAccountRepository) CreateWithRole(_ context.Context, account *domain.Account, role string) error {
	email := strings.ToLower(account.Email)
	account.ID = m.nextID
	account.Email = email
	m.nextID++
	copied := *account
	m.accounts[email] = &copied
	m.roles.assignments[email] = append(m.roles.assignments[email], role)
	m.mutations++
	return nil
}

func (m *mockAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (m *mockAccountRepository) List(_ context.Context) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *mockAccountRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.accounts)), nil
}

func (m *mockAccountRepository) UpdatePasswordHash(_ context.Context, email, hash string) error {
	account, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = hash
	m.mutations++
	return nil
}

func (m *mockAccountRepository) UpdateLocked(_ context.Context, email string, locked bool) error {
	account, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Locked = locked
	m.mutations++
	return nil
}

func (m *mockAccountRepository) DeleteCascade(_ context.Context, email string) error {
	key := strings.ToLower(email)
	if _, ok := m.accounts[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.roles.assignments, key)
	if m.payrolls != nil {
		delete(m.payrolls.records, key)
	}
	delete(m.accounts, key)
	m.mutations++
	return nil
}

// mockRoleAssignmentRepository is an in-memory implementation of
// repository.RoleAssignmentRepository.
type mockRoleAssignmentRepository struct {
	assignments map[string][]string
	mutations   int
}

func newMockRoleAssignmentRepository() *mockRoleAssignmentRepository {
	return &mockRoleAssignmentRepository{assignments: make(map[string][]string)}
}

func (m *mockRoleAssignmentRepository) FindRolesByEmail(_ context.Context, email string) ([]string, error) {
	roles := append([]string(nil), m.assignments[strings.ToLower(email)]...)
	sort.Strings(roles)
	return roles, nil
}

func (m *mockRoleAssignmentRepository) Create(_ context.Context, email, role string) error {
	key := strings.ToLower(email)
	m.assignments[key] = append(m.assignments[key], role)
	m.mutations++
	return nil
}

func (m *mockRoleAssignmentRepository) DeleteByEmailAndRole(_ context.Context, email, role string) error {
	key := strings.ToLower(email)
	roles := m.assignments[key]
	for i, held := range roles {
		if held == role {
			m.assignments[key] = append(roles[:i], roles[i+1:]...)
			m.mutations++
			return nil
		}
	}
	return pgx.ErrNoRows
}

// mockPayrollRepository is an in-memory implementation of
// repository.PayrollRepository keyed by employee email.
type mockPayrollRepository struct {
	records   map[string][]domain.Payroll
	nextID    int64
	mutations int
}

func newMockPayrollRepository() *mockPayrollRepository {
	return &mockPayrollRepository{records: make(map[string][]domain.Payroll), nextID: 1}
}

func (m *mockPayrollRepository) CreateBatch(_ context.Context, payrolls []domain.Payroll) error {
	for _, payroll := range payrolls {
		key := strings.ToLower(payroll.Employee)
		for _, existing := range m.records[key] {
			if existing.Period.Equal(payroll.Period) {
				return errDuplicatePayroll
			}
		}
	}
	for _, payroll := range payrolls {
		key := strings.ToLower(payroll.Employee)
		payroll.ID = m.nextID
		m.nextID++
		m.records[key] = append(m.records[key], payroll)
		m.mutations++
	}
	return nil
}

func (m *mockPayrollRepository) Update(_ context.Context, payroll *domain.Payroll) error {
	key := strings.ToLower(payroll.Employee)
	for i, existing := range m.records[key] {
		if existing.Period.Equal(payroll.Period) {
			m.records[key][i].SalaryCents = payroll.SalaryCents
			m.mutations++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockPayrollRepository) FindByEmployee(_ context.Context, employee string) ([]domain.Payroll, error) {
	payrolls := append([]domain.Payroll(nil), m.records[strings.ToLower(employee)]...)
	sort.Slice(payrolls, func(i, j int) bool { return payrolls[i].Period.After(payrolls[j].Period) })
	return payrolls, nil
}

func (m *mockPayrollRepository) FindByEmployeeAndPeriod(_ context.Context, employee string, period time.Time) (*domain.Payroll, error) {
	for _, payroll := range m.records[strings.ToLower(employee)] {
		if payroll.Period.Equal(period) {
			copied := payroll
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// mockSecurityEventRepository is an in-memory audit log.
type mockSecurityEventRepository struct {
	rows []domain.SecurityEvent
}

func (m *mockSecurityEventRepository) Create(_ context.Context, event *domain.SecurityEvent) error {
	event.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *event)
	return nil
}

func (m *mockSecurityEventRepository) List(_ context.Context) ([]domain.SecurityEvent, error) {
	return append([]domain.SecurityEvent(nil), m.rows...), nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(domain.SecurityAction, events.EventHandler) {}
func (d *recordingDispatcher) SubscribeAll(events.EventHandler)                     {}

func (d *recordingDispatcher) actions() []domain.SecurityAction {
	actions := make([]domain.SecurityAction, 0, len(d.published))
	for _, event := range d.published {
		actions = append(actions, event.Action)
	}
	return actions
}
