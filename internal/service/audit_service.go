package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// AuditService persists published security events and serves the audit log
// to auditors.
type AuditService struct {
	dispatcher events.Dispatcher
	store      repository.SecurityEventRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, store repository.SecurityEventRepository, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, store: store, logger: logger}
}

// RegisterHandlers subscribes the audit sink to every published event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.SubscribeAll(a.record)
}

// ListEvents returns the full audit log ascending by id.
func (a *AuditService) ListEvents(ctx context.Context) ([]domain.SecurityEvent, error) {
	eventRows, err := a.store.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return eventRows, nil
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	row := &domain.SecurityEvent{
		Occurred: event.Timestamp,
		Action:   event.Action,
		Subject:  event.Subject,
		Object:   event.Object,
		Path:     event.Path,
	}
	if err := a.store.Create(ctx, row); err != nil {
		// A failed audit write must not fail the request that triggered it.
		a.logger.Error("failed to persist security event",
			zap.String("action", string(event.Action)), zap.Error(err))
		return err
	}
	a.logger.Info("security event",
		zap.String("action", string(event.Action)),
		zap.String("subject", event.Subject),
		zap.String("object", event.Object),
	)
	return nil
}
