// Package payment define el puerto hacia la pasarela de pagos con tarjeta.
// La implementación concreta vive en infrastructure/wompi; para tests se
// inyecta un doble.
package payment

import "context"

// Estados que reporta la pasarela para una transacción de pago.
const (
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
	StatusError    = "ERROR"
	StatusPending  = "PENDING"
)

// CardData datos crudos de la tarjeta. Nunca se loguean completos ni se
// persisten: solo viajan hacia el endpoint de tokenización.
type CardData struct {
	Number     string
	CVC        string
	ExpMonth   string // "1".."12"; el cliente la normaliza a dos dígitos
	ExpYear    string // dos dígitos
	CardHolder string
}

// CardToken resultado de la tokenización: id opaco más datos enmascarados.
type CardToken struct {
	ID       string
	Brand    string
	LastFour string
}

// Request pago ya preparado para la pasarela (token de tarjeta + firma).
type Request struct {
	AcceptanceToken string
	Signature       string
	AmountInCents   int64
	Currency        string
	CustomerEmail   string
	Reference       string
	CardToken       string
	Installments    int
}

// Response resultado de la pasarela. En errores estructurados del proveedor
// la implementación devuelve Status=ERROR con StatusMessage en lugar de error,
// para que el caso de uso pueda persistir la transacción FAILED.
type Response struct {
	ProviderID    string
	Status        string
	StatusMessage string
	Reference     string
}

// NewCardPayment pago con tarjeta nueva: la implementación orquesta
// acceptance token → tokenización → firma → envío.
type NewCardPayment struct {
	Card          CardData
	AmountInCents int64
	Currency      string
	CustomerEmail string
	Reference     string
	Installments  int
}

// Gateway puerto de salida hacia la pasarela de pagos.
type Gateway interface {
	GetAcceptanceToken(ctx context.Context) (string, error)
	CreateCardToken(ctx context.Context, card CardData) (*CardToken, error)
	ProcessPayment(ctx context.Context, req Request) (*Response, error)
	GetTransactionStatus(ctx context.Context, providerID string) (*Response, error)
	ProcessPaymentWithNewCard(ctx context.Context, p NewCardPayment) (*Response, *CardToken, error)
}
