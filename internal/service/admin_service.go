package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)

const deletedSuccessfully = "Deleted successfully!"

// AdminService orchestrates role toggling, access toggling, account deletion
// and the user listing.
type AdminService struct {
	accounts    repository.AccountRepository
	assignments repository.RoleAssignmentRepository
	catalog     *domain.RoleCatalog
	locks       *AccountLocks
	dispatcher  events.Dispatcher
}

// AdminDependencies encapsulates collaborator requirements for the admin service.
type AdminDependencies struct {
	AccountRepo    repository.AccountRepository
	AssignmentRepo repository.RoleAssignmentRepository
	Catalog        *domain.RoleCatalog
	Locks          *AccountLocks
	Dispatcher     events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	locks := deps.Locks
	if locks == nil {
		locks = NewAccountLocks()
	}
	return &AdminService{
		accounts:    deps.AccountRepo,
		assignments: deps.AssignmentRepo,
		catalog:     deps.Catalog,
		locks:       locks,
		dispatcher:  deps.Dispatcher,
	}
}

// ListUsers returns all accounts ascending by id with their current roles.
// Roles are fetched per account, so each entry is consistent as of its own
// read.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.AccountWithRoles, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	listing := make([]domain.AccountWithRoles, 0, len(accounts))
	for _, account := range accounts {
		roles, err := s.assignments.FindRolesByEmail(ctx, account.Email)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		listing = append(listing, domain.AccountWithRoles{Account: account, Roles: roles})
	}
	return listing, nil
}

// ToggleRole grants or revokes one role for the target account. Validation,
// catalog membership and the rule engine all gate before the single
// persistence mutation; any failure leaves the store untouched.
func (s *AdminService) ToggleRole(ctx context.Context, actor string, req dto.RoleToggleRequest) (*domain.AccountWithRoles, error) {
	var violations []string
	if err := dto.Validate(req); err != nil {
		violations = append(violations, err.Error())
	}
	var op domain.RoleOperation
	if req.Operation != "" {
		parsed, err := domain.ParseRoleOperation(req.Operation)
		if err != nil {
			violations = append(violations, err.Error())
		}
		op = parsed
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(strings.Join(violations, " && "), nil)
	}
	if !s.catalog.Contains(req.Role) {
		return nil, apperrors.MapError(domain.ErrRoleNotFound)
	}

	unlock := s.locks.Lock(req.User)
	defer unlock()

	currentRoles, err := s.assignments.FindRolesByEmail(ctx, req.User)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	requested, err := domain.EvaluateRoleToggle(currentRoles, op, req.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	action := domain.ActionGrantRole
	if op == domain.RoleOperationRevoke {
		action = domain.ActionRemoveRole
		err = s.assignments.DeleteByEmailAndRole(ctx, req.User, requested)
	} else {
		err = s.assignments.Create(ctx, req.User, requested)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, action, actor, requested+" to "+req.User)

	return s.loadAccountWithRoles(ctx, req.User)
}

// DeleteUser removes an account and every dependent record. Admin accounts
// are never deletable through this path.
func (s *AdminService) DeleteUser(ctx context.Context, actor, email string) (*dto.UserDeletedResponse, error) {
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("Invalid user email given: '"+email+"'!", nil)
	}

	unlock := s.locks.Lock(email)
	defer unlock()

	roles, err := s.assignments.FindRolesByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(roles) == 0 {
		return nil, apperrors.MapError(domain.ErrAccountNotFound)
	}
	for _, role := range roles {
		if role == domain.RoleAdmin {
			return nil, apperrors.MapError(domain.ErrCannotDeleteAdmin)
		}
	}

	if err := s.accounts.DeleteCascade(ctx, email); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, domain.ActionDeleteUser, actor, email)

	return &dto.UserDeletedResponse{User: email, Status: deletedSuccessfully}, nil
}

// SetAccess locks or unlocks a non-admin account.
func (s *AdminService) SetAccess(ctx context.Context, actor string, req dto.AccessToggleRequest) (*dto.AccessToggleResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	lock, err := parseAccessOperation(req.Operation)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	unlock := s.locks.Lock(req.User)
	defer unlock()

	roles, err := s.assignments.FindRolesByEmail(ctx, req.User)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(roles) == 0 {
		return nil, apperrors.MapError(domain.ErrAccountNotFound)
	}
	if lock {
		for _, role := range roles {
			if role == domain.RoleAdmin {
				return nil, apperrors.NewValidationError("Can't lock the ADMINISTRATOR!", nil)
			}
		}
	}

	if err := s.accounts.UpdateLocked(ctx, req.User, lock); err != nil {
		return nil, apperrors.MapError(err)
	}

	action := domain.ActionUnlockUser
	status := "User " + req.User + " unlocked!"
	if lock {
		action = domain.ActionLockUser
		status = "User " + req.User + " locked!"
	}
	s.publish(ctx, action, actor, req.User)

	return &dto.AccessToggleResponse{Status: status}, nil
}

func (s *AdminService) loadAccountWithRoles(ctx context.Context, email string) (*domain.AccountWithRoles, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(domain.ErrAccountNotFound)
		}
		return nil, apperrors.MapError(err)
	}
	roles, err := s.assignments.FindRolesByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.AccountWithRoles{Account: *account, Roles: roles}, nil
}

func (s *AdminService) publish(ctx context.Context, action domain.SecurityAction, subject, object string) {
	if s.dispatcher == nil {
		return
	}
	if subject == "" {
		subject = events.AnonymousSubject
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Action:    action,
		Subject:   subject,
		Object:    object,
		Path:      "/api/admin/user",
		Timestamp: time.Now(),
	})
}

func parseAccessOperation(raw string) (bool, error) {
	switch {
	case strings.EqualFold(raw, "LOCK"):
		return true, nil
	case strings.EqualFold(raw, "UNLOCK"):
		return false, nil
	default:
		return false, errors.New("operation must be LOCK or UNLOCK")
	}
}
