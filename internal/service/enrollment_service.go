package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// EnrollmentService links subscribers to chit groups.
type EnrollmentService struct {
	store storage.Store
}

// NewEnrollmentService creates a new EnrollmentService with the given
// storage backend.
func NewEnrollmentService(store storage.Store) *EnrollmentService {
	return &EnrollmentService{store: store}
}

// Enroll binds a subscriber to a group with an assigned chit number. Both
// ids must resolve to existing active rows. An existing enrollment for the
// pair or a taken chit number fails with the conflict error; that check is
// the insert itself, so concurrent enrollments for the same number cannot
// both succeed. The chit number is not bounded by the group's subscriber
// count.
func (s *EnrollmentService) Enroll(ctx context.Context, subscriberID, groupID string, assignedNumber int, joinDate time.Time) (*models.Enrollment, error) {
	if assignedNumber < 1 {
		return nil, invalid("assignedChitNumber", "must be at least 1")
	}
	if joinDate.IsZero() {
		return nil, invalid("joinDate", "must be set")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsActive {
		return nil, fmt.Errorf("group %s is inactive: %w", groupID, storage.ErrConflict)
	}
	sub, err := s.store.GetSubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return nil, fmt.Errorf("subscriber %s is inactive: %w", subscriberID, storage.ErrConflict)
	}

	enr := &models.Enrollment{
		SubscriberID:       subscriberID,
		GroupID:            groupID,
		AssignedChitNumber: assignedNumber,
		JoinDate:           joinDate,
	}
	if err := s.store.CreateEnrollment(ctx, enr); err != nil {
		slog.Error("Enroll failed", "group_id", groupID, "subscriber_id", subscriberID,
			"chit_number", assignedNumber, "error", err)
		return nil, err
	}

	slog.Info("Subscriber enrolled", "group_id", groupID, "subscriber_id", subscriberID,
		"chit_number", assignedNumber)
	return enr, nil
}

// List retrieves a group's roster ordered by assigned chit number.
func (s *EnrollmentService) List(ctx context.Context, groupID string) ([]*models.EnrollmentDetail, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListEnrollments(ctx, groupID)
}
