package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/application/importer"
	"github.com/invorya/almacen-api/internal/domain"
)

// ImportHandler maneja la importación y exportación CSV del catálogo (protegido).
type ImportHandler struct {
	uc *importer.UseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Import godoc
// @Summary      Importar productos desde CSV (preview o apply)
// @Description  Clasifica cada fila en create/update/skip/invalid según el modo.
// @Description  Con apply=false solo reporta; con apply=true escribe fila a fila.
// @Tags         import
// @Accept       mpfd
// @Produce      json
// @Param        file   formData  file    true   "Archivo CSV"
// @Param        mode   query     string  true   "create | update | upsert"
// @Param        apply  query     bool    false  "Aplicar cambios"  default(false)
// @Success      200    {object}  dto.ImportResult
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	mode := c.Query("mode", c.FormValue("mode"))
	apply := c.QueryBool("apply", false)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file (multipart) requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	out, err := h.uc.Import(file, mode, apply)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar catálogo completo a CSV
// @Tags         import
// @Produce      text/csv
// @Success      200  {string}  string  "CSV con BOM UTF-8"
// @Router       /api/products.csv [get]
func (h *ImportHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.Export(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}
