package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
)

// CreatePayment appends a payment row. No dedup and no cap against the
// installment amount: over- and under-payment are permitted and left to
// reporting.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaymentDate == 0 {
		payment.PaymentDate = time.Now().Unix()
	}

	var notes interface{}
	if payment.Notes != "" {
		notes = payment.Notes
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO InstallmentPayments (id, installmentId, subscriberId, paymentDate, amountPaid, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.InstallmentID, payment.SubscriberID,
		payment.PaymentDate, payment.AmountPaid, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPayments retrieves the payments recorded for an installment with the
// payer's name, oldest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, installmentID string) ([]*models.PaymentDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ip.id, ip.installmentId, ip.subscriberId, ip.paymentDate, ip.amountPaid, ip.notes, s.name
		 FROM InstallmentPayments ip
		 JOIN Subscribers s ON ip.subscriberId = s.id
		 WHERE ip.installmentId = ?
		 ORDER BY ip.paymentDate`,
		installmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.PaymentDetail
	for rows.Next() {
		p := &models.PaymentDetail{}
		var notes sql.NullString
		if err := rows.Scan(&p.ID, &p.InstallmentID, &p.SubscriberID,
			&p.PaymentDate, &p.AmountPaid, &notes, &p.SubscriberName); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if notes.Valid {
			p.Notes = notes.String
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// PaymentStatus sums payments per enrolled subscriber for the installment
// and classifies each roster row: "Paid" when anything was collected, "Due"
// otherwise. The classification is deliberately binary; there is no
// comparison against the expected installment amount.
func (s *SQLiteStore) PaymentStatus(ctx context.Context, groupID, installmentID string) ([]*models.DuesStatus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, s.id, s.name, e.assignedChitNumber,
		        COALESCE(SUM(ip.amountPaid), 0)
		 FROM Enrollments e
		 JOIN Subscribers s ON e.subscriberId = s.id
		 LEFT JOIN InstallmentPayments ip
		     ON e.subscriberId = ip.subscriberId AND ip.installmentId = ?
		 WHERE e.groupId = ?
		 GROUP BY e.id, s.id, s.name, e.assignedChitNumber
		 ORDER BY e.assignedChitNumber`,
		installmentID, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment status: %w", err)
	}
	defer rows.Close()

	var statuses []*models.DuesStatus
	for rows.Next() {
		st := &models.DuesStatus{}
		if err := rows.Scan(&st.EnrollmentID, &st.SubscriberID, &st.SubscriberName,
			&st.AssignedChitNumber, &st.TotalPaid); err != nil {
			return nil, fmt.Errorf("failed to scan payment status: %w", err)
		}
		if st.TotalPaid > 0 {
			st.Status = "Paid"
		} else {
			st.Status = "Due"
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment status: %w", err)
	}
	return statuses, nil
}
