package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jeyostore/pos-api/internal/application/analytics"
	"github.com/jeyostore/pos-api/internal/application/auth"
	"github.com/jeyostore/pos-api/internal/application/catalog"
	"github.com/jeyostore/pos-api/internal/application/receipt"
	"github.com/jeyostore/pos-api/internal/application/sales"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CatalogUC        *catalog.CatalogUseCase
	SaleUC           *sales.SaleUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ReceiptFormatter *receipt.Formatter
	ReceiptPDF       sales.ReceiptPDFGenerator
	JWTSecret        string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Public storefront: the shareable price list
	priceListHandler := NewPriceListHandler(deps.CatalogUC)
	api.Get("/public/price-list", priceListHandler.Get)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/visibility", productHandler.SetVisibility)
	products.Post("/:id/stock", productHandler.AddStock)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/purge", productHandler.Purge)

	// Sales ledger
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptFormatter, deps.ReceiptPDF)
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Patch("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Reverse)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/receipt/pdf", saleHandler.ReceiptPDF)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/revenue", dashboardHandler.GetRevenue)

	// Stock drift report
	protected.Get("/inventory/drift", saleHandler.Drift)
}
