package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
)

// AdminHandler gestión de usuarios y planes (rol admin).
type AdminHandler struct {
	uc *usecase.UserUseCase
}

func NewAdminHandler(uc *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminUserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListForAdmin(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPlan godoc
// @Summary      Cambiar plan de un usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdatePlanRequest  true  "free | premium"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/plan [patch]
func (h *AdminHandler) SetPlan(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetPlan(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "usuario")
	}
	return c.JSON(out)
}
