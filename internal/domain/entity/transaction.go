package entity

import (
	"time"

	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/pkg/money"
)

// Status estado de una transacción de checkout.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusVoided    Status = "VOIDED"
)

// PaymentMethod medio de pago de la transacción.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
)

// Transaction transacción de checkout.
//
// Máquina de estados: PENDING es el estado inicial; COMPLETED y FAILED son
// terminales y solo alcanzables desde PENDING (MarkAsCompleted/MarkAsFailed
// están guardados). MarkAsPending no tiene guarda de estado previo: es la vía
// de reintento del proveedor, donde un envío en ERROR puede volver a quedar
// pendiente al consultar el estado en la pasarela.
//
// Las transiciones son funcionales: reciben el valor y devuelven una copia
// nueva arrastrando los campos no afectados.
type Transaction struct {
	ID            string
	CustomerID    string
	ProductID     string
	ProductAmount float64 // pesos
	BaseFee       float64
	DeliveryFee   float64
	TotalAmount   float64
	Status        Status
	PaymentMethod PaymentMethod

	// Datos del proveedor de pagos; vacíos hasta el primer envío.
	ProviderTransactionID string
	ProviderReference     string
	CardLastFour          string
	CardBrand             string
	StatusMessage         string // razón reportada por la pasarela en DECLINED/ERROR

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// NewTransaction construye una transacción PENDING con el total calculado.
func NewTransaction(customerID, productID string, productAmount, baseFee, deliveryFee float64, method PaymentMethod) Transaction {
	now := time.Now()
	return Transaction{
		CustomerID:    customerID,
		ProductID:     productID,
		ProductAmount: productAmount,
		BaseFee:       baseFee,
		DeliveryFee:   deliveryFee,
		TotalAmount:   productAmount + baseFee + deliveryFee,
		Status:        StatusPending,
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CalculateTotal suma de monto del producto más fees.
func (t Transaction) CalculateTotal() float64 {
	return t.ProductAmount + t.BaseFee + t.DeliveryFee
}

// IsAmountValid verifica que el total almacenado cuadre con el calculado
// dentro de la tolerancia de redondeo (0.01 inclusive).
func (t Transaction) IsAmountValid() bool {
	return money.EqualWithinTolerance(t.TotalAmount, t.CalculateTotal())
}

// MarkAsCompleted transición PENDING → COMPLETED. Fija los datos del proveedor
// y el instante de completado. Desde cualquier otro estado es ilegal.
func (t Transaction) MarkAsCompleted(providerID, providerRef string) (Transaction, error) {
	if t.Status != StatusPending {
		return Transaction{}, domain.Conflict(
			"Transaction %s cannot be completed (current status %s)", t.ID, t.Status)
	}
	now := time.Now()
	t.Status = StatusCompleted
	t.ProviderTransactionID = providerID
	t.ProviderReference = providerRef
	t.UpdatedAt = now
	t.CompletedAt = &now
	return t, nil
}

// MarkAsFailed transición PENDING → FAILED. statusMessage registra la razón
// reportada por la pasarela (puede ser vacío).
func (t Transaction) MarkAsFailed(statusMessage string) (Transaction, error) {
	if t.Status != StatusPending {
		return Transaction{}, domain.Conflict(
			"Transaction %s cannot be failed (current status %s)", t.ID, t.Status)
	}
	t.Status = StatusFailed
	t.StatusMessage = statusMessage
	t.UpdatedAt = time.Now()
	return t, nil
}

// MarkAsPending fija el estado PENDING sin guarda de estado previo (vía de
// reintento del proveedor). Con argumentos vacíos conserva los datos de
// proveedor existentes.
func (t Transaction) MarkAsPending(providerID, providerRef string) Transaction {
	t.Status = StatusPending
	if providerID != "" {
		t.ProviderTransactionID = providerID
	}
	if providerRef != "" {
		t.ProviderReference = providerRef
	}
	t.UpdatedAt = time.Now()
	return t
}

// UpdateProviderInfo actualiza los datos del proveedor sin tocar estado ni CompletedAt.
func (t Transaction) UpdateProviderInfo(providerID, providerRef string) Transaction {
	t.ProviderTransactionID = providerID
	t.ProviderReference = providerRef
	t.UpdatedAt = time.Now()
	return t
}

// WithCard registra los datos enmascarados de la tarjeta (nunca el PAN completo).
func (t Transaction) WithCard(lastFour, brand string) Transaction {
	t.CardLastFour = lastFour
	t.CardBrand = brand
	return t
}

// TransactionFromPersistence reconstruye la entidad desde campos primitivos
// almacenados, tolerando opcionales ausentes. Un status desconocido se
// conserva tal cual: las guardas de transición lo tratarán como no-PENDING.
func TransactionFromPersistence(t Transaction, status string) Transaction {
	t.Status = Status(status)
	return t
}
