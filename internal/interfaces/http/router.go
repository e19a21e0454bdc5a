package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pentasoft/pims-api/internal/application/assets"
	"github.com/pentasoft/pims-api/internal/application/auth"
	"github.com/pentasoft/pims-api/internal/application/inventory"
	"github.com/pentasoft/pims-api/internal/application/product"
	"github.com/pentasoft/pims-api/internal/application/reports"
	"github.com/pentasoft/pims-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *product.ProductUseCase
	InventoryUC *inventory.LedgerUseCase
	RegistryUC  *assets.RegistryUseCase
	LifecycleUC *assets.LifecycleUseCase
	ReportUC    *reports.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireAdmin()

	// Users (protegido; escritura solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", admin, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/password", userHandler.UpdatePassword)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", admin, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Inventory (protegido; movimientos solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/in", admin, inventoryHandler.RegisterIn)
	invGroup.Post("/out", admin, inventoryHandler.RegisterOut)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/product/:id", inventoryHandler.ListByProduct)
	invGroup.Get("/recipient/:id", inventoryHandler.ListByRecipient)

	// Asset types y assets (protegido; escritura solo admin)
	assetHandler := NewAssetHandler(deps.RegistryUC, deps.LifecycleUC)
	assetTypes := protected.Group("/asset-types")
	assetTypes.Post("/", admin, assetHandler.CreateAssetType)
	assetTypes.Get("/", assetHandler.ListAssetTypes)
	assetTypes.Post("/:id/fields", admin, assetHandler.AddField)

	assetsGroup := protected.Group("/assets")
	assetsGroup.Post("/", admin, assetHandler.CreateAsset)
	assetsGroup.Get("/", assetHandler.ListAssets)
	assetsGroup.Get("/summary", assetHandler.Summary)
	assetsGroup.Get("/user/:id", assetHandler.UserAssets)
	assetsGroup.Get("/:id", assetHandler.GetAsset)
	assetsGroup.Post("/:id/assign", admin, assetHandler.Assign)
	assetsGroup.Post("/:id/return", admin, assetHandler.Return)
	assetsGroup.Post("/:id/transfer", admin, assetHandler.Transfer)

	// Reports (protegido, solo lectura)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/stock", reportHandler.StockReport)
	reportsGroup.Get("/stock/pdf", reportHandler.StockReportPDF)
	reportsGroup.Get("/stock/:productId", reportHandler.ProductStock)
	reportsGroup.Get("/price-history", reportHandler.PriceHistory)
	reportsGroup.Get("/product-to-person", reportHandler.ProductToPerson)
}
