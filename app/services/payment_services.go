package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/pkg/logger"
)

// PaymentStore is the persistence contract the payment service needs.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
}

// PaymentService appends subscription payment records. The vendor_id
// reference is deliberately not checked against the vendor collection,
// and confirming a payment never touches the vendor's payment_status —
// that transition is a manual administrative step.
type PaymentService struct {
	payments PaymentStore
}

func NewPaymentService(payments PaymentStore) *PaymentService {
	return &PaymentService{payments: payments}
}

// Create records a payment with defaults (method=manual, status=pending).
func (s *PaymentService) Create(ctx context.Context, in models.PaymentInput) (models.Payment, error) {
	payment := in.ToPayment(time.Now().UTC())
	if err := s.payments.Create(ctx, &payment); err != nil {
		return models.Payment{}, err
	}

	logger.WithCtx(ctx).Info("payment recorded",
		"payment_id", payment.ID.Hex(),
		"vendor_id", payment.VendorID,
		"amount_pkr", payment.AmountPKR,
		"method", payment.Method,
	)
	return payment, nil
}
