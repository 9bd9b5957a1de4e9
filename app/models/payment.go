package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod is the channel a subscription payment came through.
type PaymentMethod string

const (
	MethodEasypaisa PaymentMethod = "easypaisa"
	MethodJazzcash  PaymentMethod = "jazzcash"
	MethodManual    PaymentMethod = "manual"
)

// TxStatus is the state of a single payment record. Confirmation is a
// manual administrative step; it never transitions the vendor's
// payment_status automatically.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Payment is an append-only record of a vendor subscription payment.
// VendorID is a plain reference; it is not checked against the vendor
// collection (dangling references are permitted).
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID  string             `bson:"vendor_id" json:"vendor_id"`
	AmountPKR int64              `bson:"amount_pkr" json:"amount_pkr"`
	Method    PaymentMethod      `bson:"method" json:"method"`
	Status    TxStatus           `bson:"status" json:"status"`
	Reference string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PaymentInput is the request body for POST /api/payments.
type PaymentInput struct {
	VendorID  string  `json:"vendor_id" validate:"required"`
	AmountPKR int64   `json:"amount_pkr" validate:"gte=0"`
	Method    *string `json:"method" validate:"nullable,in=easypaisa,jazzcash,manual"`
	Status    *string `json:"status" validate:"nullable,in=pending,confirmed,failed"`
	Reference *string `json:"reference"`
	Notes     *string `json:"notes"`
}

// ToPayment materialises the input with defaults: method=manual,
// status=pending.
func (in PaymentInput) ToPayment(now time.Time) Payment {
	p := Payment{
		VendorID:  in.VendorID,
		AmountPKR: in.AmountPKR,
		Method:    MethodManual,
		Status:    TxPending,
		Reference: strOrEmpty(in.Reference),
		Notes:     strOrEmpty(in.Notes),
		CreatedAt: now,
	}
	if in.Method != nil {
		p.Method = PaymentMethod(*in.Method)
	}
	if in.Status != nil {
		p.Status = TxStatus(*in.Status)
	}
	return p
}
