package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pentasoft/pims-api/internal/application/assets"
	"github.com/pentasoft/pims-api/internal/application/auth"
	"github.com/pentasoft/pims-api/internal/application/inventory"
	"github.com/pentasoft/pims-api/internal/application/product"
	"github.com/pentasoft/pims-api/internal/application/reports"
	"github.com/pentasoft/pims-api/internal/application/usecase"
	infrapdf "github.com/pentasoft/pims-api/internal/infrastructure/pdf"
	"github.com/pentasoft/pims-api/internal/infrastructure/postgres"
	httpRouter "github.com/pentasoft/pims-api/internal/interfaces/http"
	"github.com/pentasoft/pims-api/pkg/config"
	"github.com/pentasoft/pims-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	assetTypeRepo := postgres.NewAssetTypeRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := product.NewProductUseCase(txRunner, productRepo, transactionRepo)
	inventoryUC := inventory.NewLedgerUseCase(txRunner, transactionRepo, productRepo, userRepo)
	registryUC := assets.NewRegistryUseCase(txRunner, assetRepo, assetTypeRepo, assignmentRepo, userRepo)
	lifecycleUC := assets.NewLifecycleUseCase(txRunner, assetRepo, assignmentRepo, userRepo)

	// Reporte de stock en PDF (Maroto)
	pdfGenerator := infrapdf.NewMarotoStockReportGenerator()
	reportUC := reports.NewReportUseCase(productRepo, transactionRepo, userRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PIMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		RegistryUC:  registryUC,
		LifecycleUC: lifecycleUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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
