package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foremenchoice/chitledger/internal/models"
)

// DashboardStats counts the active groups and subscribers.
func (s *SQLiteStore) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM Groups WHERE isActive = 1),
		        (SELECT COUNT(*) FROM Subscribers WHERE isActive = 1)`,
	).Scan(&stats.ActiveGroups, &stats.ActiveSubscribers)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return stats, nil
}

// RecentPayments retrieves the latest payments across all groups with payer
// and group names. A negative limit returns all rows (SQLite treats a
// negative LIMIT as unbounded).
func (s *SQLiteStore) RecentPayments(ctx context.Context, limit int) ([]*models.RecentPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ip.paymentDate, s.name, g.name, i.monthNumber, ip.amountPaid
		 FROM InstallmentPayments ip
		 JOIN Subscribers s ON ip.subscriberId = s.id
		 JOIN Installments i ON ip.installmentId = i.id
		 JOIN Groups g ON i.groupId = g.id
		 ORDER BY ip.paymentDate DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.RecentPayment
	for rows.Next() {
		p := &models.RecentPayment{}
		if err := rows.Scan(&p.PaymentDate, &p.SubscriberName, &p.GroupName,
			&p.MonthNumber, &p.AmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan recent payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent payments: %w", err)
	}
	return payments, nil
}

// RecentAuctions retrieves the latest conducted auctions with winner names.
func (s *SQLiteStore) RecentAuctions(ctx context.Context, limit int) ([]*models.RecentAuction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.name, i.monthNumber, i.dueDate, s.name, COALESCE(i.auctionPrizeAmount, 0)
		 FROM Installments i
		 JOIN Groups g ON i.groupId = g.id
		 LEFT JOIN Subscribers s ON i.auctionWinnerId = s.id
		 WHERE i.isAuctionConducted = 1
		 ORDER BY i.dueDate DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent auctions: %w", err)
	}
	defer rows.Close()

	var auctions []*models.RecentAuction
	for rows.Next() {
		a := &models.RecentAuction{}
		var dueDate string
		var winner sql.NullString
		if err := rows.Scan(&a.GroupName, &a.MonthNumber, &dueDate, &winner, &a.PrizeAmount); err != nil {
			return nil, fmt.Errorf("failed to scan recent auction: %w", err)
		}
		if winner.Valid {
			a.WinnerName = winner.String
		}
		if a.DueDate, err = textToDate(dueDate); err != nil {
			return nil, fmt.Errorf("failed to parse due date: %w", err)
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent auctions: %w", err)
	}
	return auctions, nil
}
