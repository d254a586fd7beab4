package service

import (
	"context"
	"log/slog"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// PaymentService records installment payments and aggregates dues.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage
// backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Record appends a payment from a subscriber against an installment. The
// amount must be strictly positive; beyond that there is no cap or dedup,
// so over- and under-payment both land as-is. The payment timestamp is
// captured at write time.
func (s *PaymentService) Record(ctx context.Context, installmentID, subscriberID string, amount float64, notes string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, invalid("amountPaid", "must be greater than zero")
	}
	if _, err := s.store.GetInstallment(ctx, installmentID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetSubscriber(ctx, subscriberID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		InstallmentID: installmentID,
		SubscriberID:  subscriberID,
		AmountPaid:    amount,
		Notes:         notes,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "installment_id", installmentID,
			"subscriber_id", subscriberID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded", "payment_id", payment.ID,
		"installment_id", installmentID, "subscriber_id", subscriberID, "amount", amount)
	return payment, nil
}

// ListForInstallment retrieves the payments recorded against an installment.
func (s *PaymentService) ListForInstallment(ctx context.Context, installmentID string) ([]*models.PaymentDetail, error) {
	if installmentID == "" {
		return nil, invalid("installmentId", "must not be empty")
	}
	if _, err := s.store.GetInstallment(ctx, installmentID); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, installmentID)
}

// StatusForInstallment reports the dues roster of one installment month:
// every enrollment of the group with the summed payments for that month and
// the binary Paid/Due classification. Any collected amount counts as Paid,
// even below the installment amount.
func (s *PaymentService) StatusForInstallment(ctx context.Context, groupID string, monthNumber int) ([]*models.DuesStatus, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	if monthNumber < 1 {
		return nil, invalid("monthNumber", "must be at least 1")
	}

	inst, err := s.store.GetInstallmentByMonth(ctx, groupID, monthNumber)
	if err != nil {
		return nil, err
	}
	return s.store.PaymentStatus(ctx, groupID, inst.ID)
}
