package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contenedor-api/internal/application/dto"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
)

// RuleHandler CRUD de reglas de corrección (protegido).
type RuleHandler struct {
	uc *rules.RuleUseCase
}

// NewRuleHandler construye el handler.
func NewRuleHandler(uc *rules.RuleUseCase) *RuleHandler {
	return &RuleHandler{uc: uc}
}

// List godoc
// @Summary      Listar reglas de corrección
// @Tags         rules
// @Produce      json
// @Success      200  {array}  dto.RuleResponse
// @Security     BearerAuth
// @Router       /api/rules [get]
func (h *RuleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear regla de corrección
// @Tags         rules
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRuleRequest  true  "search_text, replace_text"
// @Success      201   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rules [post]
func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar regla de corrección
// @Tags         rules
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la regla"
// @Param        body  body  dto.UpdateRuleRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.RuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rules/{id} [put]
func (h *RuleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "regla no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla de corrección
// @Tags         rules
// @Param        id   path  string  true  "ID de la regla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rules/{id} [delete]
func (h *RuleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "regla no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar reglas desde YAML
// @Tags         rules
// @Accept       application/x-yaml
// @Produce      json
// @Success      201  {array}  dto.RuleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rules/import [post]
func (h *RuleHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.UserContext(), bytes.NewReader(c.Body()))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
