package dto

import "time"

// CustomerInput datos del comprador en la creación de transacción.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DeliveryInput datos de entrega en la creación de transacción.
type DeliveryInput struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// CreateTransactionRequest entrada del POST de transacciones: producto,
// comprador y dirección de entrega en una sola llamada.
type CreateTransactionRequest struct {
	ProductID string        `json:"product_id"`
	Customer  CustomerInput `json:"customer"`
	Delivery  DeliveryInput `json:"delivery"`
}

// CardInput datos de tarjeta para el pago. Nunca se persisten ni se loguean.
type CardInput struct {
	Number     string `json:"number"`
	CVC        string `json:"cvc"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CardHolder string `json:"card_holder"`
}

// PaymentRequest entrada del POST de pago sobre una transacción PENDING.
type PaymentRequest struct {
	Card         CardInput `json:"card"`
	Installments int       `json:"installments"`
}

// TransactionResponse salida de una transacción de checkout.
type TransactionResponse struct {
	ID                    string     `json:"id"`
	CustomerID            string     `json:"customer_id"`
	ProductID             string     `json:"product_id"`
	ProductAmount         float64    `json:"product_amount"`
	BaseFee               float64    `json:"base_fee"`
	DeliveryFee           float64    `json:"delivery_fee"`
	TotalAmount           float64    `json:"total_amount"`
	FormattedTotal        string     `json:"formatted_total"`
	Status                string     `json:"status"`
	IsPending             bool       `json:"isPending"`
	IsCompleted           bool       `json:"isCompleted"`
	IsFailed              bool       `json:"isFailed"`
	PaymentMethod         string     `json:"payment_method"`
	ProviderTransactionID string     `json:"provider_transaction_id,omitempty"`
	ProviderReference     string     `json:"provider_reference,omitempty"`
	CardLastFour          string     `json:"card_last_four,omitempty"`
	CardBrand             string     `json:"card_brand,omitempty"`
	StatusMessage         string     `json:"status_message,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
}

// DeliveryResponse salida de la entrega asociada a una transacción.
type DeliveryResponse struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// TransactionDetailResponse transacción más su entrega.
type TransactionDetailResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Delivery    *DeliveryResponse   `json:"delivery,omitempty"`
}

// PaymentResponse salida del pago: la transacción actualizada y el veredicto
// crudo del proveedor.
type PaymentResponse struct {
	Transaction   TransactionResponse `json:"transaction"`
	GatewayStatus string              `json:"gateway_status"`
	StatusMessage string              `json:"status_message,omitempty"`
}
