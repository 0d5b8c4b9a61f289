package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
)

// AdminHandler exposes the administrator endpoints: user listing, role
// toggling, access toggling and account deletion.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers handles GET /api/admin/user.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	listing, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]dto.AccountResponse, 0, len(listing))
	for _, entry := range listing {
		responses = append(responses, toAccountResponse(&entry))
	}
	return c.JSON(responses)
}

// ToggleRole handles PUT /api/admin/user/role.
func (h *AdminHandler) ToggleRole(c *fiber.Ctx) error {
	var req dto.RoleToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.admin.ToggleRole(c.UserContext(), actorEmail(c), req)
	if err != nil {
		return err
	}
	return c.JSON(toAccountResponse(account))
}

// DeleteUser handles DELETE /api/admin/user/{email}.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email := c.Params("email")

	resp, err := h.admin.DeleteUser(c.UserContext(), actorEmail(c), email)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SetAccess handles PUT /api/admin/user/access.
func (h *AdminHandler) SetAccess(c *fiber.Ctx) error {
	var req dto.AccessToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.admin.SetAccess(c.UserContext(), actorEmail(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func actorEmail(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Account.Email
	}
	return ""
}

func toAccountResponse(entry *domain.AccountWithRoles) dto.AccountResponse {
	roles := entry.Roles
	if roles == nil {
		roles = []string{}
	}
	return dto.AccountResponse{
		ID:       entry.Account.ID,
		Name:     entry.Account.Name,
		Lastname: entry.Account.Lastname,
		Email:    entry.Account.Email,
		Roles:    roles,
	}
}
