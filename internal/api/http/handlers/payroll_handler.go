package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/service"
)

// PayrollHandler exposes salary upload and employee payroll lookup.
type PayrollHandler struct {
	payroll *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payrollService}
}

// Upload handles POST /api/acct/payments.
func (h *PayrollHandler) Upload(c *fiber.Ctx) error {
	var records []dto.PayrollRecordRequest
	if err := c.BodyParser(&records); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.payroll.Upload(c.UserContext(), records)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateSalary handles PUT /api/acct/payments.
func (h *PayrollHandler) UpdateSalary(c *fiber.Ctx) error {
	var record dto.PayrollRecordRequest
	if err := c.BodyParser(&record); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.payroll.UpdateSalary(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetPayment handles GET /api/empl/payment with an optional period query.
func (h *PayrollHandler) GetPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	responses, err := h.payroll.GetForEmployee(c.UserContext(), principal.Account, c.Query("period"))
	if err != nil {
		return err
	}
	if c.Query("period") != "" && len(responses) == 1 {
		return c.JSON(responses[0])
	}
	return c.JSON(responses)
}
