package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentInputDefaults(t *testing.T) {
	now := time.Now()
	in := PaymentInput{VendorID: "665f1c2ab3d4e5f6a7b8c9d0", AmountPKR: 1500}

	p := in.ToPayment(now)
	assert.Equal(t, MethodManual, p.Method)
	assert.Equal(t, TxPending, p.Status)
	assert.Equal(t, int64(1500), p.AmountPKR)
	assert.Equal(t, now, p.CreatedAt)
	assert.Empty(t, p.Reference)
}

func TestPaymentInputOverrides(t *testing.T) {
	method := "easypaisa"
	status := "confirmed"
	ref := "EP-20250801-991"
	in := PaymentInput{
		VendorID:  "665f1c2ab3d4e5f6a7b8c9d0",
		AmountPKR: 3000,
		Method:    &method,
		Status:    &status,
		Reference: &ref,
	}

	p := in.ToPayment(time.Now())
	assert.Equal(t, MethodEasypaisa, p.Method)
	assert.Equal(t, TxConfirmed, p.Status)
	assert.Equal(t, "EP-20250801-991", p.Reference)
}
