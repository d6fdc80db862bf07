package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/invorya/almacen-api/internal/application/auth"
	"github.com/invorya/almacen-api/internal/application/importer"
	"github.com/invorya/almacen-api/internal/application/inventory"
	"github.com/invorya/almacen-api/internal/application/usecase"
	infrapdf "github.com/invorya/almacen-api/internal/infrastructure/pdf"
	"github.com/invorya/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/almacen-api/internal/interfaces/http"
	"github.com/invorya/almacen-api/pkg/config"
	"github.com/invorya/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	noteUC := usecase.NewNoteUseCase(noteRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, productRepo, movementRepo)
	importerUC := importer.NewUseCase(productRepo)
	authUC := auth.NewUseCase(auth.Config{
		AdminUser:         cfg.Session.AdminUser,
		AdminPasswordHash: cfg.Session.AdminPasswordHash,
		Secret:            cfg.Session.Secret,
		MaxAge:            time.Duration(cfg.Session.MaxAgeSeconds) * time.Second,
	})
	pdfGenerator := infrapdf.NewLowStockReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		MovementUC:    movementUC,
		NoteUC:        noteUC,
		ImporterUC:    importerUC,
		AuthUC:        authUC,
		PDF:           pdfGenerator,
		AppName:       cfg.App.Name,
		SessionSecret: cfg.Session.Secret,
		CookieName:    cfg.Session.CookieName,
	})

	// Swagger UI en http://localhost:<port>/docs. Registrado después del router
	// para que quede detrás del middleware de sesión, como el resto del sitio.
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	// Frontend estático detrás del portal: la pantalla de login es pública,
	// el resto pasa por el middleware de sesión registrado en el router.
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.Static.Dir, "login.html"))
	})
	app.Static("/", cfg.Static.Dir)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
