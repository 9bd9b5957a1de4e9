package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/metrics"
)

// PaymentRepository appends payment records. There is no update or delete:
// the ledger is append-only and confirmation is recorded out of band.
type PaymentRepository struct {
	store *store.Store
}

func NewPaymentRepository(s *store.Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

// Create inserts the payment and fills in the assigned ObjectID.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColPayments, "insert", time.Now())

	res, err := r.store.Payments().InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("payment insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}
