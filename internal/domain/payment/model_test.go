package payment_test

import (
	"testing"
	"time"

	"gymadmin/internal/domain/payment"
)

// TestPaymentValidation tests validation of Payment.
func TestPaymentValidation(t *testing.T) {
	tests := []struct {
		name    string
		payment payment.Payment
		wantErr error
	}{
		{
			name: "valid payment",
			payment: payment.Payment{
				ID:          "p1",
				MemberID:    "m1",
				AmountCents: 200000,
				PaymentDate: time.Now(),
				Method:      payment.MethodCash,
				Status:      payment.StatusCompleted,
			},
			wantErr: nil,
		},
		{
			name:    "no member",
			payment: payment.Payment{ID: "p1", AmountCents: 100, Status: payment.StatusCompleted},
			wantErr: payment.ErrNoMember,
		},
		{
			name:    "zero amount",
			payment: payment.Payment{ID: "p1", MemberID: "m1", Status: payment.StatusPending},
			wantErr: payment.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			payment: payment.Payment{ID: "p1", MemberID: "m1", AmountCents: -500, Status: payment.StatusPending},
			wantErr: payment.ErrInvalidAmount,
		},
		{
			name:    "unknown status",
			payment: payment.Payment{ID: "p1", MemberID: "m1", AmountCents: 100, Status: "Refunded"},
			wantErr: payment.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.payment.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
