package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// CreateSubscriber persists a new subscriber. The phone number is the
// natural key; a duplicate fails with ErrDuplicate.
func (s *SQLiteStore) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedDate == 0 {
		sub.CreatedDate = time.Now().Unix()
	}

	var address interface{}
	if sub.Address != "" {
		address = sub.Address
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO Subscribers (id, name, phoneNumber, address, createdDate, isActive)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.PhoneNumber, address, sub.CreatedDate, sub.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscriber: %w", mapUnique(err))
	}
	return nil
}

func scanSubscriber(row interface{ Scan(...interface{}) error }) (*models.Subscriber, error) {
	sub := &models.Subscriber{}
	var address sql.NullString
	err := row.Scan(&sub.ID, &sub.Name, &sub.PhoneNumber, &address, &sub.CreatedDate, &sub.IsActive)
	if err != nil {
		return nil, err
	}
	if address.Valid {
		sub.Address = address.String
	}
	return sub, nil
}

// GetSubscriber retrieves a subscriber by ID.
func (s *SQLiteStore) GetSubscriber(ctx context.Context, subscriberID string) (*models.Subscriber, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, phoneNumber, address, createdDate, isActive FROM Subscribers WHERE id = ?",
		subscriberID)
	sub, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subscriber %s: %w", subscriberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return sub, nil
}

// ListSubscribers retrieves all active subscribers ordered by name.
func (s *SQLiteStore) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phoneNumber, address, createdDate, isActive FROM Subscribers WHERE isActive = 1 ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subs, nil
}

// DeleteSubscriber removes a subscriber, following the same cascade/guard
// policy as group deletion for the subscriber's enrollments, payments and
// dividends.
func (s *SQLiteStore) DeleteSubscriber(ctx context.Context, subscriberID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM Subscribers WHERE id = ?", subscriberID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("subscriber %s: %w", subscriberID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check subscriber existence: %w", err)
	}

	var dependents int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM Enrollments WHERE subscriberId = ?)
		      + (SELECT COUNT(*) FROM InstallmentPayments WHERE subscriberId = ?)`,
		subscriberID, subscriberID,
	).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("failed to count dependents: %w", err)
	}

	if dependents > 0 {
		if !s.cascade {
			return fmt.Errorf("subscriber %s has %d dependent rows: %w", subscriberID, dependents, storage.ErrReferential)
		}
		for _, stmt := range []string{
			"DELETE FROM InstallmentPayments WHERE subscriberId = ?",
			"DELETE FROM Dividends WHERE subscriberId = ?",
			"DELETE FROM Enrollments WHERE subscriberId = ?",
			"UPDATE Installments SET auctionWinnerId = NULL WHERE auctionWinnerId = ?",
		} {
			if _, err := tx.ExecContext(ctx, stmt, subscriberID); err != nil {
				return fmt.Errorf("failed to delete dependent rows: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM Subscribers WHERE id = ?", subscriberID); err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
