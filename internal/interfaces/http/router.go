// Package http expone la API del almacén sobre Fiber: portal de sesión por
// cookie, catálogo, libro de movimientos, importación/exportación CSV, notas
// y reporte PDF.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/auth"
	"github.com/invorya/almacen-api/internal/application/importer"
	"github.com/invorya/almacen-api/internal/application/inventory"
	"github.com/invorya/almacen-api/internal/application/usecase"
	"github.com/invorya/almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	NoteUC     *usecase.NoteUseCase
	ImporterUC *importer.UseCase
	AuthUC     *auth.UseCase
	PDF        *pdf.LowStockReportGenerator

	AppName       string
	SessionSecret string
	CookieName    string
}

// Router registra el middleware de sesión y las rutas de la API.
// El middleware va antes que todo: fuera de la lista pública, sin cookie
// válida no se sirve nada (ni páginas ni API).
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.SessionSecret, deps.CookieName))

	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	productHandler := NewProductHandler(deps.ProductUC)
	importHandler := NewImportHandler(deps.ImporterUC)
	// Las rutas fijas bajo /products van antes que /products/:id.
	api.Get("/products.csv", importHandler.Export)
	api.Post("/products/import", importHandler.Import)
	api.Post("/products", productHandler.Create)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Put("/products/:id", productHandler.Update)
	api.Delete("/products/:id", productHandler.Delete)

	movementHandler := NewMovementHandler(deps.MovementUC)
	api.Post("/products/:id/movements", movementHandler.Register)
	api.Get("/products/:id/movements", movementHandler.ListByProduct)

	reportHandler := NewReportHandler(deps.ProductUC, deps.PDF, deps.AppName)
	api.Get("/low-stock", productHandler.LowStock)
	api.Get("/low-stock.pdf", reportHandler.LowStockPDF)

	noteHandler := NewNoteHandler(deps.NoteUC)
	api.Post("/notes", noteHandler.Create)
	api.Get("/notes", noteHandler.List)
}
