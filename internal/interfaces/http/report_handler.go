package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/application/usecase"
	"github.com/invorya/almacen-api/internal/infrastructure/pdf"
)

// ReportHandler genera el reporte PDF de stock bajo (protegido).
type ReportHandler struct {
	productUC *usecase.ProductUseCase
	generator *pdf.LowStockReportGenerator
	appName   string
}

// NewReportHandler construye el handler.
func NewReportHandler(productUC *usecase.ProductUseCase, generator *pdf.LowStockReportGenerator, appName string) *ReportHandler {
	return &ReportHandler{productUC: productUC, generator: generator, appName: appName}
}

// LowStockPDF godoc
// @Summary      Reporte PDF de productos con stock bajo
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {string}  string  "PDF binario"
// @Router       /api/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	products, err := h.productUC.LowStock("", "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	doc, err := h.generator.Generate(h.appName, products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_GENERATION", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low-stock.pdf"`)
	return c.Send(doc)
}
