package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// CreateGroup persists a new chit group.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}

	var commission interface{}
	if group.ForemanCommissionPercentage != nil {
		commission = *group.ForemanCommissionPercentage
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO Groups (id, name, value, numberOfSubscribers, duration, startDate, foremanCommissionPercentage, installmentAmount, isActive)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.Value, group.NumberOfSubscribers, group.Duration,
		dateToText(group.StartDate), commission, group.InstallmentAmount, group.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", mapUnique(err))
	}
	return nil
}

func scanGroup(row interface{ Scan(...interface{}) error }) (*models.Group, error) {
	group := &models.Group{}
	var startDate string
	var commission sql.NullFloat64

	err := row.Scan(&group.ID, &group.Name, &group.Value, &group.NumberOfSubscribers,
		&group.Duration, &startDate, &commission, &group.InstallmentAmount, &group.IsActive)
	if err != nil {
		return nil, err
	}
	if commission.Valid {
		c := commission.Float64
		group.ForemanCommissionPercentage = &c
	}
	group.StartDate, err = textToDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	return group, nil
}

const groupColumns = "id, name, value, numberOfSubscribers, duration, startDate, foremanCommissionPercentage, installmentAmount, isActive"

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM Groups WHERE id = ?", groupID)
	group, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all active groups, newest start date first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+groupColumns+" FROM Groups WHERE isActive = 1 ORDER BY startDate DESC, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// UpdateGroup updates a group's mutable fields, including the recomputed
// installment amount.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	var commission interface{}
	if group.ForemanCommissionPercentage != nil {
		commission = *group.ForemanCommissionPercentage
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE Groups
		 SET name = ?, value = ?, numberOfSubscribers = ?, duration = ?, startDate = ?,
		     foremanCommissionPercentage = ?, installmentAmount = ?, isActive = ?
		 WHERE id = ?`,
		group.Name, group.Value, group.NumberOfSubscribers, group.Duration,
		dateToText(group.StartDate), commission, group.InstallmentAmount, group.IsActive, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", mapUnique(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteGroup removes a group. With cascade enabled, owned enrollments,
// installments, payments and dividends go in the same transaction; without
// it, the delete fails with ErrReferential while owned rows exist.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM Groups WHERE id = ?", groupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	var dependents int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM Enrollments WHERE groupId = ?)
		      + (SELECT COUNT(*) FROM Installments WHERE groupId = ?)`,
		groupID, groupID,
	).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("failed to count dependents: %w", err)
	}

	if dependents > 0 {
		if !s.cascade {
			return fmt.Errorf("group %s has %d dependent rows: %w", groupID, dependents, storage.ErrReferential)
		}
		for _, stmt := range []string{
			"DELETE FROM InstallmentPayments WHERE installmentId IN (SELECT id FROM Installments WHERE groupId = ?)",
			"DELETE FROM Dividends WHERE groupId = ?",
			"DELETE FROM Installments WHERE groupId = ?",
			"DELETE FROM Enrollments WHERE groupId = ?",
		} {
			if _, err := tx.ExecContext(ctx, stmt, groupID); err != nil {
				return fmt.Errorf("failed to delete dependent rows: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM Groups WHERE id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
