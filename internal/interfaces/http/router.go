package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checkout-api/internal/application/auth"
	"github.com/jhoicas/checkout-api/internal/application/checkout"
	"github.com/jhoicas/checkout-api/internal/application/receipt"
	"github.com/jhoicas/checkout-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CreateTx      *checkout.CreateTransactionUseCase
	ProcessPay    *checkout.ProcessPaymentUseCase
	SyncStatus    *checkout.SyncStatusUseCase
	GetTx         *checkout.GetTransactionUseCase
	ProviderEvent *checkout.ProviderEventUseCase
	ReceiptUC     *receipt.UseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogo (listado y detalle públicos; gestión protegida con rol admin)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	admin := products.Group("/", AuthMiddleware(deps.JWTSecret), AdminOnly())
	admin.Post("/", productHandler.Create)
	admin.Put("/:id", productHandler.Update)
	admin.Delete("/:id", productHandler.Delete)

	// Checkout (público: lo consume la tienda)
	checkoutHandler := NewCheckoutHandler(
		deps.CreateTx, deps.ProcessPay, deps.SyncStatus, deps.GetTx, deps.ProviderEvent, deps.ReceiptUC)

	txGroup := api.Group("/checkout/transactions")
	txGroup.Post("/", checkoutHandler.Create)
	txGroup.Get("/", checkoutHandler.ListByCustomer)
	txGroup.Get("/:id", checkoutHandler.GetByID)
	txGroup.Post("/:id/payment", checkoutHandler.Pay)
	txGroup.Post("/:id/sync", checkoutHandler.Sync)
	txGroup.Get("/:id/receipt", checkoutHandler.Receipt)

	// Webhook de eventos de la pasarela
	api.Post("/checkout/webhook", checkoutHandler.Webhook)
}
