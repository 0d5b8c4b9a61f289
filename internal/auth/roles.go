package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// RequireRoles ensures the principal holds one of the allowed canonical role
// names. Denials are published as ACCESS_DENIED before rejecting.
func RequireRoles(dispatcher events.Dispatcher, allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		for _, role := range principal.Roles {
			if _, exists := allowedSet[role]; exists {
				return c.Next()
			}
		}
		if dispatcher != nil {
			_ = dispatcher.Publish(c.UserContext(), events.Event{
				ID:        uuid.NewString(),
				Action:    domain.ActionAccessDenied,
				Subject:   principal.Account.Email,
				Object:    c.Path(),
				Path:      c.Path(),
				Timestamp: time.Now(),
			})
		}
		return apperrors.NewForbidden("Access Denied!")
	}
}

// RequireAuthenticated ensures a principal is present, any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
