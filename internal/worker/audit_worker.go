package worker

import (
	"github.com/spec-kit/account-service/internal/service"
)

// StartAuditWorker registers the audit sink on the event dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
