package checkout

import (
	"context"
	"strings"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/internal/domain/payment"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/logger"
	"github.com/jhoicas/checkout-api/pkg/money"
)

// ProcessPaymentUseCase cobra una transacción PENDING con tarjeta nueva:
// tokeniza, firma, envía a la pasarela y aplica el veredicto sobre la
// máquina de estados.
type ProcessPaymentUseCase struct {
	runner       TxRunner
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	gateway      payment.Gateway
	currency     string
	log          *logger.Logger
}

// NewProcessPaymentUseCase construye el caso de uso.
func NewProcessPaymentUseCase(
	runner TxRunner,
	txRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	gateway payment.Gateway,
	currency string,
	log *logger.Logger,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		runner:       runner,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		gateway:      gateway,
		currency:     currency,
		log:          log.Component("payment"),
	}
}

// Execute procesa el pago de la transacción. Un veredicto DECLINED/ERROR del
// proveedor no es un error de la operación: la transacción queda FAILED y la
// respuesta lo refleja.
func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, transactionID string, in dto.PaymentRequest) (*dto.PaymentResponse, error) {
	if strings.TrimSpace(in.Card.Number) == "" || strings.TrimSpace(in.Card.CVC) == "" {
		return nil, domain.InvalidInput("card number and cvc are required")
	}

	t, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, wrapInternal("load transaction", err)
	}
	if t == nil {
		return nil, domain.NotFound("Transaction %s not found", transactionID)
	}
	if t.Status != entity.StatusPending {
		return nil, domain.Conflict("Transaction %s cannot be paid (current status %s)", t.ID, t.Status)
	}
	if !t.IsAmountValid() {
		return nil, domain.Unprocessable("Transaction %s total amount does not match product amount plus fees", t.ID)
	}

	customer, err := uc.customerRepo.GetByID(t.CustomerID)
	if err != nil {
		return nil, wrapInternal("load customer", err)
	}
	if customer == nil {
		return nil, domain.NotFound("Customer %s not found", t.CustomerID)
	}

	reference := payment.NewReference(t.ID)
	resp, cardToken, err := uc.gateway.ProcessPaymentWithNewCard(ctx, payment.NewCardPayment{
		Card: payment.CardData{
			Number:     in.Card.Number,
			CVC:        in.Card.CVC,
			ExpMonth:   in.Card.ExpMonth,
			ExpYear:    in.Card.ExpYear,
			CardHolder: in.Card.CardHolder,
		},
		AmountInCents: money.ToCents(t.TotalAmount),
		Currency:      uc.currency,
		CustomerEmail: customer.Email,
		Reference:     reference,
		Installments:  in.Installments,
	})
	if err != nil {
		return nil, wrapInternal("process payment", err)
	}

	current := *t
	if cardToken != nil {
		current = current.WithCard(cardToken.LastFour, cardToken.Brand)
	}

	updated, err := settleGatewayVerdict(ctx, uc.runner, current, resp, reference)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", updated.ID).
		Str("gateway_status", resp.Status).
		Str("status", string(updated.Status)).
		Msg("pago procesado")

	return &dto.PaymentResponse{
		Transaction:   toTransactionResponse(updated),
		GatewayStatus: resp.Status,
		StatusMessage: resp.StatusMessage,
	}, nil
}

// settleGatewayVerdict aplica el estado reportado por la pasarela sobre la
// transacción y la persiste. APPROVED descuenta stock en la misma transacción
// de base de datos que el cambio de estado; DECLINED/ERROR dejan FAILED sin
// tocar stock; PENDING (o un estado desconocido) conserva PENDING refrescando
// los datos del proveedor. Es idempotente frente a veredictos repetidos.
func settleGatewayVerdict(ctx context.Context, runner TxRunner, t entity.Transaction, resp *payment.Response, fallbackRef string) (entity.Transaction, error) {
	providerID := resp.ProviderID
	if providerID == "" {
		providerID = t.ProviderTransactionID
	}
	ref := resp.Reference
	if ref == "" {
		ref = fallbackRef
	}

	var updated entity.Transaction
	switch resp.Status {
	case payment.StatusApproved:
		if t.Status == entity.StatusCompleted {
			return t, nil
		}
		var err error
		updated, err = t.MarkAsCompleted(providerID, ref)
		if err != nil {
			return entity.Transaction{}, err
		}
		err = runner.Run(ctx, func(
			txRepo repository.TransactionRepository,
			_ repository.DeliveryRepository,
			productRepo repository.ProductRepository,
			_ repository.CustomerRepository,
		) error {
			if err := txRepo.Update(&updated); err != nil {
				return err
			}
			return productRepo.DecrementStock(updated.ProductID, 1)
		})
		if err != nil {
			return entity.Transaction{}, wrapInternal("commit approved payment", err)
		}
		return updated, nil

	case payment.StatusDeclined, payment.StatusError:
		if t.Status == entity.StatusFailed {
			return t, nil
		}
		withInfo := t.UpdateProviderInfo(providerID, ref)
		var err error
		updated, err = withInfo.MarkAsFailed(resp.StatusMessage)
		if err != nil {
			return entity.Transaction{}, err
		}

	default: // PENDING o estados no reconocidos del proveedor
		updated = t.MarkAsPending(providerID, ref)
	}

	err := runner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.DeliveryRepository,
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
	) error {
		return txRepo.Update(&updated)
	})
	if err != nil {
		return entity.Transaction{}, wrapInternal("persist payment verdict", err)
	}
	return updated, nil
}
