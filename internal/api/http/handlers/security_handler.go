package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/service"
)

// SecurityHandler exposes the audit log to auditors.
type SecurityHandler struct {
	audit *service.AuditService
}

// NewSecurityHandler constructs handler.
func NewSecurityHandler(auditService *service.AuditService) *SecurityHandler {
	return &SecurityHandler{audit: auditService}
}

// ListEvents handles GET /api/security/events.
func (h *SecurityHandler) ListEvents(c *fiber.Ctx) error {
	eventRows, err := h.audit.ListEvents(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]dto.SecurityEventResponse, 0, len(eventRows))
	for _, event := range eventRows {
		responses = append(responses, dto.SecurityEventResponse{
			ID:      event.ID,
			Date:    event.Occurred,
			Action:  string(event.Action),
			Subject: event.Subject,
			Object:  event.Object,
			Path:    event.Path,
		})
	}
	return c.JSON(responses)
}
