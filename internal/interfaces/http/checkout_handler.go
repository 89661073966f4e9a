package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checkout-api/internal/application/checkout"
	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/application/receipt"
)

// CheckoutHandler maneja el flujo de compra: creación de la transacción,
// pago, sincronización de estado, detalle y comprobante PDF.
type CheckoutHandler struct {
	createUC  *checkout.CreateTransactionUseCase
	paymentUC *checkout.ProcessPaymentUseCase
	syncUC    *checkout.SyncStatusUseCase
	getUC     *checkout.GetTransactionUseCase
	eventUC   *checkout.ProviderEventUseCase
	receiptUC *receipt.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(
	createUC *checkout.CreateTransactionUseCase,
	paymentUC *checkout.ProcessPaymentUseCase,
	syncUC *checkout.SyncStatusUseCase,
	getUC *checkout.GetTransactionUseCase,
	eventUC *checkout.ProviderEventUseCase,
	receiptUC *receipt.UseCase,
) *CheckoutHandler {
	return &CheckoutHandler{
		createUC:  createUC,
		paymentUC: paymentUC,
		syncUC:    syncUC,
		getUC:     getUC,
		eventUC:   eventUC,
		receiptUC: receiptUC,
	}
}

// Create godoc
// @Summary      Crear transacción de checkout (PENDING)
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Producto, comprador y entrega"
// @Success      201  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/checkout/transactions [post]
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.createUC.Execute(c.Context(), in)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Pay godoc
// @Summary      Pagar una transacción PENDING con tarjeta
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.PaymentRequest  true  "Datos de la tarjeta"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Failure      422  {object}  dto.Envelope
// @Router       /api/checkout/transactions/{id}/payment [post]
func (h *CheckoutHandler) Pay(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	out, err := h.paymentUC.Execute(c.Context(), c.Params("id"), in)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Sync godoc
// @Summary      Conciliar el estado con la pasarela de pagos
// @Tags         checkout
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/checkout/transactions/{id}/sync [post]
func (h *CheckoutHandler) Sync(c *fiber.Ctx) error {
	out, err := h.syncUC.Execute(c.Context(), c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Detalle de la transacción con su entrega
// @Tags         checkout
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/checkout/transactions/{id} [get]
func (h *CheckoutHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.getUC.Execute(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// ListByCustomer godoc
// @Summary      Historial de transacciones de un comprador
// @Tags         checkout
// @Produce      json
// @Param        customer_email  query  string  true   "Email del comprador"
// @Param        limit           query  int     false  "Límite"
// @Param        offset          query  int     false  "Offset"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/checkout/transactions [get]
func (h *CheckoutHandler) ListByCustomer(c *fiber.Ctx) error {
	out, err := h.getUC.ListByCustomerEmail(
		c.Query("customer_email"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// webhookEvent payload del evento transaction.updated de la pasarela. Solo el
// id de la transacción se usa: el estado del cuerpo no es confiable y el caso
// de uso lo confirma directamente con la pasarela.
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Transaction struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			StatusMessage string `json:"status_message"`
			Reference     string `json:"reference"`
		} `json:"transaction"`
	} `json:"data"`
}

// Webhook godoc
// @Summary      Evento push de la pasarela (transaction.updated)
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  webhookEvent  true  "Evento del proveedor"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/checkout/webhook [post]
func (h *CheckoutHandler) Webhook(c *fiber.Ctx) error {
	var ev webhookEvent
	if err := c.BodyParser(&ev); err != nil {
		return respondBadBody(c)
	}
	out, err := h.eventUC.Execute(c.Context(), ev.Data.Transaction.ID)
	if err != nil {
		return RespondError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una transacción COMPLETED
// @Tags         checkout
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.Envelope
// @Router       /api/checkout/transactions/{id}/receipt [get]
func (h *CheckoutHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.receiptUC.Execute(c.Params("id"))
	if err != nil {
		return RespondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="receipt-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
