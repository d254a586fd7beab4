package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/foremenchoice/chitledger/internal/models"
)

// CreateEnrollment links a subscriber to a group. Both uniqueness
// constraints (one enrollment per subscriber per group, one chit number per
// group) are checked atomically by the insert; a violation of either fails
// with ErrConflict.
func (s *SQLiteStore) CreateEnrollment(ctx context.Context, enr *models.Enrollment) error {
	if enr.ID == "" {
		enr.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO Enrollments (id, subscriberId, groupId, assignedChitNumber, joinDate)
		 VALUES (?, ?, ?, ?, ?)`,
		enr.ID, enr.SubscriberID, enr.GroupID, enr.AssignedChitNumber, dateToText(enr.JoinDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert enrollment: %w", mapUnique(err))
	}
	return nil
}

// ListEnrollments retrieves the roster of a group with joined subscriber
// details, ordered by assigned chit number.
func (s *SQLiteStore) ListEnrollments(ctx context.Context, groupID string) ([]*models.EnrollmentDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.subscriberId, e.groupId, e.assignedChitNumber, e.joinDate, s.name, s.phoneNumber
		 FROM Enrollments e
		 JOIN Subscribers s ON e.subscriberId = s.id
		 WHERE e.groupId = ?
		 ORDER BY e.assignedChitNumber`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var details []*models.EnrollmentDetail
	for rows.Next() {
		d := &models.EnrollmentDetail{}
		var joinDate string
		if err := rows.Scan(&d.ID, &d.SubscriberID, &d.GroupID, &d.AssignedChitNumber,
			&joinDate, &d.SubscriberName, &d.SubscriberPhone); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		if d.JoinDate, err = textToDate(joinDate); err != nil {
			return nil, fmt.Errorf("failed to parse join date: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}
	return details, nil
}

// IsEnrolled reports whether the subscriber holds an enrollment in the group.
func (s *SQLiteStore) IsEnrolled(ctx context.Context, groupID, subscriberID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM Enrollments WHERE groupId = ? AND subscriberId = ?",
		groupID, subscriberID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}
