package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
)

func TestAuditService_PersistsPublishedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	store := &mockSecurityEventRepository{}
	audit := NewAuditService(dispatcher, store, zap.NewNop())
	audit.RegisterHandlers()

	now := time.Now()
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Action:    domain.ActionCreateUser,
		Subject:   events.AnonymousSubject,
		Object:    "john@acme.com",
		Path:      "/api/auth/signup",
		Timestamp: now,
	}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-2",
		Action:    domain.ActionGrantRole,
		Subject:   "admin@acme.com",
		Object:    "ROLE_ACCOUNTANT to john@acme.com",
		Path:      "/api/admin/user",
		Timestamp: now,
	}))

	rows, err := audit.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, domain.ActionCreateUser, rows[0].Action)
	assert.Equal(t, events.AnonymousSubject, rows[0].Subject)
	assert.Equal(t, "john@acme.com", rows[0].Object)

	assert.Equal(t, int64(2), rows[1].ID)
	assert.Equal(t, domain.ActionGrantRole, rows[1].Action)
	assert.Equal(t, "admin@acme.com", rows[1].Subject)
}
