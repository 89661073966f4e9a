package checkout

import (
	"context"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
	"github.com/jhoicas/checkout-api/internal/domain/payment"
	"github.com/jhoicas/checkout-api/internal/domain/repository"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

// SyncStatusUseCase consulta el estado real de la transacción en la pasarela
// y lo concilia con el estado local. Cubre el caso del pago que quedó PENDING
// (o en ERROR transitorio) en el primer envío.
type SyncStatusUseCase struct {
	runner  TxRunner
	txRepo  repository.TransactionRepository
	gateway payment.Gateway
	log     *logger.Logger
}

// NewSyncStatusUseCase construye el caso de uso.
func NewSyncStatusUseCase(runner TxRunner, txRepo repository.TransactionRepository, gateway payment.Gateway, log *logger.Logger) *SyncStatusUseCase {
	return &SyncStatusUseCase{
		runner:  runner,
		txRepo:  txRepo,
		gateway: gateway,
		log:     log.Component("payment-sync"),
	}
}

// Execute refresca el estado de la transacción desde el proveedor.
func (uc *SyncStatusUseCase) Execute(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByID(transactionID)
	if err != nil {
		return nil, wrapInternal("load transaction", err)
	}
	if t == nil {
		return nil, domain.NotFound("Transaction %s not found", transactionID)
	}
	if t.ProviderTransactionID == "" {
		return nil, domain.Conflict("Transaction %s has not been submitted to the payment provider", t.ID)
	}

	resp, err := uc.gateway.GetTransactionStatus(ctx, t.ProviderTransactionID)
	if err != nil {
		return nil, wrapInternal("query gateway status", err)
	}

	updated, err := settleGatewayVerdict(ctx, uc.runner, *t, resp, t.ProviderReference)
	if err != nil {
		return nil, err
	}

	if updated.Status != t.Status {
		uc.log.Info().
			Str("transaction_id", updated.ID).
			Str("from", string(t.Status)).
			Str("to", string(updated.Status)).
			Msg("estado conciliado con la pasarela")
	}

	out := toTransactionResponse(updated)
	return &out, nil
}
