package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// CreateInstallments inserts a whole installment schedule in one
// transaction: either every row is created or none is.
func (s *SQLiteStore) CreateInstallments(ctx context.Context, installments []*models.Installment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, inst := range installments {
		if inst.ID == "" {
			inst.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Installments (id, groupId, monthNumber, dueDate, isAuctionConducted, isCompleted)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			inst.ID, inst.GroupID, inst.MonthNumber, dateToText(inst.DueDate),
			inst.IsAuctionConducted, inst.IsCompleted,
		)
		if err != nil {
			return fmt.Errorf("failed to insert installment %d: %w", inst.MonthNumber, mapUnique(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountInstallments returns the number of installments a group has.
func (s *SQLiteStore) CountInstallments(ctx context.Context, groupID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Installments WHERE groupId = ?", groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count installments: %w", err)
	}
	return count, nil
}

func scanInstallment(row interface{ Scan(...interface{}) error }) (*models.Installment, error) {
	inst := &models.Installment{}
	var dueDate string
	var prize sql.NullFloat64
	var winner sql.NullString

	err := row.Scan(&inst.ID, &inst.GroupID, &inst.MonthNumber, &dueDate,
		&inst.IsAuctionConducted, &prize, &winner, &inst.IsCompleted)
	if err != nil {
		return nil, err
	}
	if prize.Valid {
		p := prize.Float64
		inst.AuctionPrizeAmount = &p
	}
	if winner.Valid {
		w := winner.String
		inst.AuctionWinnerID = &w
	}
	inst.DueDate, err = textToDate(dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse due date: %w", err)
	}
	return inst, nil
}

const installmentColumns = "id, groupId, monthNumber, dueDate, isAuctionConducted, auctionPrizeAmount, auctionWinnerId, isCompleted"

// ListInstallments retrieves a group's installments ordered by month number.
func (s *SQLiteStore) ListInstallments(ctx context.Context, groupID string) ([]*models.Installment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+installmentColumns+" FROM Installments WHERE groupId = ? ORDER BY monthNumber",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []*models.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate installments: %w", err)
	}
	return installments, nil
}

// GetInstallment retrieves an installment by ID.
func (s *SQLiteStore) GetInstallment(ctx context.Context, installmentID string) (*models.Installment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+installmentColumns+" FROM Installments WHERE id = ?", installmentID)
	inst, err := scanInstallment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("installment %s: %w", installmentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return inst, nil
}

// GetInstallmentByMonth retrieves an installment by its group and month.
func (s *SQLiteStore) GetInstallmentByMonth(ctx context.Context, groupID string, monthNumber int) (*models.Installment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+installmentColumns+" FROM Installments WHERE groupId = ? AND monthNumber = ?",
		groupID, monthNumber)
	inst, err := scanInstallment(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s month %d: %w", groupID, monthNumber, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return inst, nil
}

// RecordAuction sets the auction fields of an installment whose auction has
// not been conducted yet. The guard on isAuctionConducted rides in the
// UPDATE's WHERE clause so concurrent recorders cannot both succeed.
func (s *SQLiteStore) RecordAuction(ctx context.Context, installmentID string, prizeAmount float64, winnerSubscriberID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Installments
		 SET isAuctionConducted = 1, auctionPrizeAmount = ?, auctionWinnerId = ?
		 WHERE id = ? AND isAuctionConducted = 0`,
		prizeAmount, winnerSubscriberID, installmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to record auction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check auction update: %w", err)
	}
	if n == 0 {
		// Distinguish a missing row from an already-conducted auction.
		var conducted bool
		err := s.db.QueryRowContext(ctx,
			"SELECT isAuctionConducted FROM Installments WHERE id = ?", installmentID,
		).Scan(&conducted)
		if err == sql.ErrNoRows {
			return fmt.Errorf("installment %s: %w", installmentID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check installment: %w", err)
		}
		return fmt.Errorf("installment %s: %w", installmentID, storage.ErrAlreadyRecorded)
	}
	return nil
}
