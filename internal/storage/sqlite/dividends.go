package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
)

// CreateDividends inserts one distribution's dividend rows in a single
// transaction. A repeat distribution for the same auction date trips the
// (groupId, subscriberId, auctionDate) constraint and rolls back whole.
func (s *SQLiteStore) CreateDividends(ctx context.Context, dividends []*models.Dividend) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, div := range dividends {
		if div.ID == "" {
			div.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Dividends (id, groupId, subscriberId, auctionDate, dividendAmount, distributionDate)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			div.ID, div.GroupID, div.SubscriberID,
			dateToText(div.AuctionDate), div.DividendAmount, dateToText(div.DistributionDate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert dividend: %w", mapUnique(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryDividends(ctx context.Context, where string, args ...interface{}) ([]*models.DividendDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.groupId, d.subscriberId, d.auctionDate, d.dividendAmount, d.distributionDate, s.name
		 FROM Dividends d
		 JOIN Subscribers s ON d.subscriberId = s.id
		 `+where+`
		 ORDER BY d.auctionDate DESC, s.name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dividends: %w", err)
	}
	defer rows.Close()

	var details []*models.DividendDetail
	for rows.Next() {
		d := &models.DividendDetail{}
		var auctionDate, distributionDate string
		if err := rows.Scan(&d.ID, &d.GroupID, &d.SubscriberID,
			&auctionDate, &d.DividendAmount, &distributionDate, &d.SubscriberName); err != nil {
			return nil, fmt.Errorf("failed to scan dividend: %w", err)
		}
		if d.AuctionDate, err = textToDate(auctionDate); err != nil {
			return nil, fmt.Errorf("failed to parse auction date: %w", err)
		}
		if d.DistributionDate, err = textToDate(distributionDate); err != nil {
			return nil, fmt.Errorf("failed to parse distribution date: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dividends: %w", err)
	}
	return details, nil
}

// ListDividends retrieves a group's dividend history with member names.
func (s *SQLiteStore) ListDividends(ctx context.Context, groupID string) ([]*models.DividendDetail, error) {
	return s.queryDividends(ctx, "WHERE d.groupId = ?", groupID)
}

// ListDividendHistory retrieves the full dividend history across groups.
func (s *SQLiteStore) ListDividendHistory(ctx context.Context) ([]*models.DividendDetail, error) {
	return s.queryDividends(ctx, "")
}
