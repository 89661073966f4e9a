package checkout

import (
	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain/entity"
	"github.com/jhoicas/checkout-api/pkg/money"
)

func toTransactionResponse(t entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                    t.ID,
		CustomerID:            t.CustomerID,
		ProductID:             t.ProductID,
		ProductAmount:         t.ProductAmount,
		BaseFee:               t.BaseFee,
		DeliveryFee:           t.DeliveryFee,
		TotalAmount:           t.TotalAmount,
		FormattedTotal:        money.FormatCOP(t.TotalAmount),
		Status:                string(t.Status),
		IsPending:             t.Status == entity.StatusPending,
		IsCompleted:           t.Status == entity.StatusCompleted,
		IsFailed:              t.Status == entity.StatusFailed,
		PaymentMethod:         string(t.PaymentMethod),
		ProviderTransactionID: t.ProviderTransactionID,
		ProviderReference:     t.ProviderReference,
		CardLastFour:          t.CardLastFour,
		CardBrand:             t.CardBrand,
		StatusMessage:         t.StatusMessage,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
		CompletedAt:           t.CompletedAt,
	}
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	return &dto.DeliveryResponse{
		ID:         d.ID,
		Address:    d.Address,
		City:       d.City,
		PostalCode: d.PostalCode,
		Phone:      d.Phone,
	}
}
