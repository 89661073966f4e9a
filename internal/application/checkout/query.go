package checkout

import (
	"strings"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
)

// GetTransactionUseCase consultas de lectura: detalle con entrega e historial
// por comprador.
type GetTransactionUseCase struct {
	txRepo       repository.TransactionRepository
	deliveryRepo repository.DeliveryRepository
	customerRepo repository.CustomerRepository
}

// NewGetTransactionUseCase construye el caso de uso.
func NewGetTransactionUseCase(
	txRepo repository.TransactionRepository,
	deliveryRepo repository.DeliveryRepository,
	customerRepo repository.CustomerRepository,
) *GetTransactionUseCase {
	return &GetTransactionUseCase{txRepo: txRepo, deliveryRepo: deliveryRepo, customerRepo: customerRepo}
}

// Execute devuelve el detalle de la transacción.
func (uc *GetTransactionUseCase) Execute(transactionID string) (*dto.TransactionDetailResponse, error) {
	t, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, wrapInternal("load transaction", err)
	}
	if t == nil {
		return nil, domain.NotFound("Transaction %s not found", transactionID)
	}
	delivery, err := uc.deliveryRepo.GetByTransactionID(t.ID)
	if err != nil {
		return nil, wrapInternal("load delivery", err)
	}
	return &dto.TransactionDetailResponse{
		Transaction: toTransactionResponse(*t),
		Delivery:    toDeliveryResponse(delivery),
	}, nil
}

// ListByCustomerEmail historial de transacciones de un comprador, más
// recientes primero. El email es el identificador público del comprador.
func (uc *GetTransactionUseCase) ListByCustomerEmail(email string, limit, offset int) ([]dto.TransactionResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.InvalidInput("customer_email is required")
	}
	customer, err := uc.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, wrapInternal("load customer", err)
	}
	if customer == nil {
		return nil, domain.NotFound("Customer with email %s not found", email)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	txs, err := uc.txRepo.ListByCustomer(customer.ID, limit, offset)
	if err != nil {
		return nil, wrapInternal("list transactions", err)
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(*t))
	}
	return out, nil
}
