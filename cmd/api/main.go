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

	"github.com/jhoicas/checkout-api/internal/application/auth"
	"github.com/jhoicas/checkout-api/internal/application/checkout"
	"github.com/jhoicas/checkout-api/internal/application/receipt"
	"github.com/jhoicas/checkout-api/internal/application/usecase"
	"github.com/jhoicas/checkout-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/checkout-api/internal/infrastructure/pdf"
	"github.com/jhoicas/checkout-api/internal/infrastructure/postgres"
	"github.com/jhoicas/checkout-api/internal/infrastructure/wompi"
	httpRouter "github.com/jhoicas/checkout-api/internal/interfaces/http"
	"github.com/jhoicas/checkout-api/pkg/config"
	"github.com/jhoicas/checkout-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache opcional del acceptance token. Sin REDIS_ADDR cada checkout
	// consulta /merchants directamente.
	var tokenCache wompi.TokenCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisTokenCache(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		tokenCache = redisCache
	}

	gateway := wompi.New(wompi.Config{
		BaseURL:         cfg.Wompi.BaseURL,
		PublicKey:       cfg.Wompi.PublicKey,
		PrivateKey:      cfg.Wompi.PrivateKey,
		IntegritySecret: cfg.Wompi.IntegritySecret,
		Timeout:         cfg.Wompi.Timeout,
	}, tokenCache, log)

	productUC := usecase.NewProductUseCase(productRepo)
	createTxUC := checkout.NewCreateTransactionUseCase(txRunner, productRepo, customerRepo, cfg.Checkout.DeliveryFee, log)
	processPayUC := checkout.NewProcessPaymentUseCase(txRunner, txRepo, customerRepo, gateway, cfg.Checkout.Currency, log)
	syncStatusUC := checkout.NewSyncStatusUseCase(txRunner, txRepo, gateway, log)
	getTxUC := checkout.NewGetTransactionUseCase(txRepo, deliveryRepo, customerRepo)
	providerEventUC := checkout.NewProviderEventUseCase(txRunner, txRepo, gateway, log)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := receipt.New(txRepo, customerRepo, productRepo, deliveryRepo, pdfGenerator)

	authUC := auth.New(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CreateTx:      createTxUC,
		ProcessPay:    processPayUC,
		SyncStatus:    syncStatusUC,
		GetTx:         getTxUC,
		ProviderEvent: providerEventUC,
		ReceiptUC:     receiptUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
