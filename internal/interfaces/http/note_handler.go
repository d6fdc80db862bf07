package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/application/usecase"
	"github.com/invorya/almacen-api/internal/domain"
)

// NoteHandler maneja las notas de texto libre (protegido).
type NoteHandler struct {
	uc *usecase.NoteUseCase
}

// NewNoteHandler construye el handler.
func NewNoteHandler(uc *usecase.NoteUseCase) *NoteHandler {
	return &NoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "content"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar notas (más recientes primero)
// @Tags         notes
// @Produce      json
// @Success      200  {array}  dto.NoteResponse
// @Router       /api/notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
