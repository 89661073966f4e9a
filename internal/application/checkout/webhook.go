package checkout

import (
	"context"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/payment"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// ProviderEventUseCase procesa eventos push de la pasarela (webhook de
// transaction.updated). El endpoint es público, así que el estado que trae el
// cuerpo del evento nunca se aplica: el evento solo dispara una confirmación
// contra la pasarela y se asienta el veredicto que ella misma reporte. Un POST
// forjado con un id conocido no puede completar una transacción sin pago.
type ProviderEventUseCase struct {
	runner  TxRunner
	txRepo  repository.TransactionRepository
	gateway payment.Gateway
	log     *logger.Logger
}

// NewProviderEventUseCase construye el caso de uso.
func NewProviderEventUseCase(
	runner TxRunner,
	txRepo repository.TransactionRepository,
	gateway payment.Gateway,
	log *logger.Logger,
) *ProviderEventUseCase {
	return &ProviderEventUseCase{runner: runner, txRepo: txRepo, gateway: gateway, log: log.Component("webhook")}
}

// Execute confirma con la pasarela el estado de la transacción notificada y lo
// aplica. Eventos repetidos son idempotentes; un evento de una transacción
// desconocida devuelve NotFound (la pasarela reintenta con backoff ante un 404).
func (uc *ProviderEventUseCase) Execute(ctx context.Context, providerID string) (*dto.TransactionResponse, error) {
	if providerID == "" {
		return nil, domain.InvalidInput("provider transaction id is required")
	}
	t, err := uc.txRepo.GetByProviderID(providerID)
	if err != nil {
		return nil, wrapInternal("load transaction by provider id", err)
	}
	if t == nil {
		return nil, domain.NotFound("Transaction with provider id %s not found", providerID)
	}

	confirmed, err := uc.gateway.GetTransactionStatus(ctx, providerID)
	if err != nil {
		return nil, wrapInternal("confirm provider status", err)
	}

	updated, err := settleGatewayVerdict(ctx, uc.runner, *t, confirmed, t.ProviderReference)
	if err != nil {
		return nil, err
	}

	if updated.Status != t.Status {
		uc.log.Info().
			Str("transaction_id", updated.ID).
			Str("provider_id", providerID).
			Str("from", string(t.Status)).
			Str("to", string(updated.Status)).
			Msg("evento del proveedor aplicado")
	}

	out := toTransactionResponse(updated)
	return &out, nil
}
