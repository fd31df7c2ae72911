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
	"github.com/joho/godotenv"

	appanalytics "github.com/jeyostore/pos-api/internal/application/analytics"
	"github.com/jeyostore/pos-api/internal/application/auth"
	"github.com/jeyostore/pos-api/internal/application/catalog"
	"github.com/jeyostore/pos-api/internal/application/receipt"
	"github.com/jeyostore/pos-api/internal/application/sales"
	infrapdf "github.com/jeyostore/pos-api/internal/infrastructure/pdf"
	"github.com/jeyostore/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jeyostore/pos-api/internal/interfaces/http"
	"github.com/jeyostore/pos-api/pkg/config"
	"github.com/jeyostore/pos-api/pkg/logger"
)

func main() {
	// Local development convenience: a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(txRunner, productRepo, log)
	saleUC := sales.NewSaleUseCase(txRunner, productRepo, saleRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(productRepo, saleRepo)

	receiptFormatter := receipt.NewFormatter(cfg.Store.Name, cfg.Store.WhatsAppPhone)
	receiptPDF := infrapdf.NewMarotoReceiptGenerator(receiptFormatter, cfg.Store.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Jeyo POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        catalogUC,
		SaleUC:           saleUC,
		DashboardUC:      dashboardUC,
		ReceiptFormatter: receiptFormatter,
		ReceiptPDF:       receiptPDF,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
