package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/ratelimit"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

const (
	userExistsMsg      = "User exist!"
	passwordHackedMsg  = "The password is in the hacker's database!"
	samePasswordMsg    = "The passwords must be different!"
	passwordUpdatedMsg = "The password has been updated successfully"
	invalidCredentials = "invalid credentials"
	accountLockedMsg   = "account is locked"
)

// breachedPasswords is the fixed set of known-compromised passwords rejected
// at signup and password change.
var breachedPasswords = map[string]struct{}{
	"PasswordForJanuary": {}, "PasswordForFebruary": {}, "PasswordForMarch": {},
	"PasswordForApril": {}, "PasswordForMay": {}, "PasswordForJune": {},
	"PasswordForJuly": {}, "PasswordForAugust": {}, "PasswordForSeptember": {},
	"PasswordForOctober": {}, "PasswordForNovember": {}, "PasswordForDecember": {},
}

// AuthService coordinates signup, login and password changes.
type AuthService struct {
	accounts    repository.AccountRepository
	assignments repository.RoleAssignmentRepository
	tokenMgr    *auth.TokenManager
	guard       *ratelimit.LoginGuard
	locks       *AccountLocks
	dispatcher  events.Dispatcher
	bcryptCost  int
	minPassword int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	AccountRepo    repository.AccountRepository
	AssignmentRepo repository.RoleAssignmentRepository
	LoginGuard     *ratelimit.LoginGuard
	Locks          *AccountLocks
	Dispatcher     events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	locks := deps.Locks
	if locks == nil {
		locks = NewAccountLocks()
	}
	return &AuthService{
		accounts:    deps.AccountRepo,
		assignments: deps.AssignmentRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		guard:       deps.LoginGuard,
		locks:       locks,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.Auth.BcryptCost,
		minPassword: cfg.Auth.MinPasswordLength,
	}
}

// Signup creates a new account with its initial role. The very first account
// in the system becomes the administrator, every later one a regular user.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.AccountWithRoles, error) {
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.checkPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.Email)
	defer unlock()

	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewValidationError(userExistsMsg, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	count, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	initialRole := domain.RoleUser
	if count == 0 {
		initialRole = domain.RoleAdmin
	}

	account := &domain.Account{
		Name:         req.Name,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.accounts.CreateWithRole(ctx, account, initialRole); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, domain.ActionCreateUser, events.AnonymousSubject, account.Email, "/api/auth/signup")

	return &domain.AccountWithRoles{Account: *account, Roles: []string{initialRole}}, nil
}

// Login authenticates an account and issues a JWT carrying its roles. Five
// consecutive failures lock the account; administrators are exempt from
// auto-locking.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.AccountWithRoles, string, time.Time, error) {
	if err := dto.Validate(req); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError(err.Error(), nil)
	}

	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.publish(ctx, domain.ActionLoginFailed, req.Email, "/api/auth/login", "/api/auth/login")
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if account.Locked {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(accountLockedMsg)
	}

	roles, err := s.assignments.FindRolesByEmail(ctx, account.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(account.PasswordHash, req.Password); err != nil {
		return nil, "", time.Time{}, s.handleLoginFailure(ctx, account, roles)
	}

	if s.guard != nil {
		_ = s.guard.Reset(ctx, account.Email)
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.Email, roles)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return &domain.AccountWithRoles{Account: *account, Roles: roles}, token, exp, nil
}

// ChangePassword rotates the caller's password under the same policy as
// signup plus a must-differ check.
func (s *AuthService) ChangePassword(ctx context.Context, account *domain.Account, req dto.ChangePasswordRequest) (*dto.ChangePasswordResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.checkPasswordPolicy(req.NewPassword); err != nil {
		return nil, err
	}
	if auth.ComparePassword(account.PasswordHash, req.NewPassword) == nil {
		return nil, apperrors.NewValidationError(samePasswordMsg, nil)
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.accounts.UpdatePasswordHash(ctx, account.Email, hash); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, domain.ActionChangePassword, account.Email, account.Email, "/api/auth/changepass")

	return &dto.ChangePasswordResponse{Email: account.Email, Status: passwordUpdatedMsg}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) checkPasswordPolicy(password string) error {
	if len(password) < s.minPassword {
		return apperrors.NewValidationError(
			fmt.Sprintf("The password length must be at least %d chars!", s.minPassword), nil)
	}
	if _, breached := breachedPasswords[password]; breached {
		return apperrors.NewValidationError(passwordHackedMsg, nil)
	}
	return nil
}

func (s *AuthService) handleLoginFailure(ctx context.Context, account *domain.Account, roles []string) error {
	s.publish(ctx, domain.ActionLoginFailed, account.Email, "/api/auth/login", "/api/auth/login")

	if s.guard != nil {
		exceeded, err := s.guard.RecordFailure(ctx, account.Email)
		if err == nil && exceeded && !containsRole(roles, domain.RoleAdmin) {
			s.publish(ctx, domain.ActionBruteForce, account.Email, "/api/auth/login", "/api/auth/login")
			if lockErr := s.accounts.UpdateLocked(ctx, account.Email, true); lockErr == nil {
				s.publish(ctx, domain.ActionLockUser, account.Email, account.Email, "/api/auth/login")
			}
		}
	}
	return apperrors.NewUnauthorized(invalidCredentials)
}

func (s *AuthService) publish(ctx context.Context, action domain.SecurityAction, subject, object, path string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Action:    action,
		Subject:   subject,
		Object:    object,
		Path:      path,
		Timestamp: time.Now(),
	})
}

func containsRole(roles []string, role string) bool {
	for _, held := range roles {
		if held == role {
			return true
		}
	}
	return false
}
