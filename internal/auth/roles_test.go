package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(domain.SecurityAction, events.EventHandler) {}
func (d *capturingDispatcher) SubscribeAll(events.EventHandler)                     {}

func TestRequireRoles_DenialIsForbiddenAndAudited(t *testing.T) {
	dispatcher := &capturingDispatcher{}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(principalKey, &Principal{
			Account: &domain.Account{Email: "user@acme.com"},
			Roles:   []string{domain.RoleUser},
		})
		return c.Next()
	})

	var gotErr error
	app.Get("/admin", func(c *fiber.Ctx) error {
		gotErr = RequireRoles(dispatcher, domain.RoleAdmin)(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
	require.NoError(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(gotErr, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	assert.Equal(t, "Access Denied!", domainErr.Message)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, domain.ActionAccessDenied, dispatcher.published[0].Action)
	assert.Equal(t, "user@acme.com", dispatcher.published[0].Subject)
}

func TestRequireRoles_MissingPrincipalIsUnauthorized(t *testing.T) {
	app := fiber.New()

	var gotErr error
	app.Get("/admin", func(c *fiber.Ctx) error {
		gotErr = RequireRoles(&capturingDispatcher{}, domain.RoleAdmin)(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
	require.NoError(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(gotErr, &domainErr))
	assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
}
