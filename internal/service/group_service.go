// Package service implements the domain operations of the chit fund ledger
// on top of a storage.Store. Each operation validates its input, runs as a
// single unit of work against the store, and logs the outcome.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/foremenchoice/chitledger/internal/calculator"
	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// maxForemanCommissionPercent is the statutory ceiling on the foreman's cut.
const maxForemanCommissionPercent = 7

// GroupService manages the chit group registry.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// GroupParams carries the caller-supplied fields for creating or updating a
// group.
type GroupParams struct {
	Name                        string
	Value                       float64
	NumberOfSubscribers         int
	Duration                    int
	StartDate                   time.Time
	ForemanCommissionPercentage *float64
}

func (p *GroupParams) validate() error {
	if p.Name == "" {
		return invalid("name", "must not be empty")
	}
	if p.Value <= 0 {
		return invalid("value", "must be positive")
	}
	if p.NumberOfSubscribers <= 0 {
		return invalid("numberOfSubscribers", "must be positive")
	}
	if p.Duration <= 0 {
		return invalid("duration", "must be positive")
	}
	if p.StartDate.IsZero() {
		return invalid("startDate", "must be set")
	}
	if c := p.ForemanCommissionPercentage; c != nil && (*c < 0 || *c > maxForemanCommissionPercent) {
		return invalid("foremanCommissionPercentage", "must be between 0 and 7")
	}
	return nil
}

// Create validates and persists a new chit group, returning it with a fresh
// identifier and the derived installment amount.
func (s *GroupService) Create(ctx context.Context, params GroupParams) (*models.Group, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:                        params.Name,
		Value:                       params.Value,
		NumberOfSubscribers:         params.NumberOfSubscribers,
		Duration:                    params.Duration,
		StartDate:                   params.StartDate,
		ForemanCommissionPercentage: params.ForemanCommissionPercentage,
		InstallmentAmount:           calculator.CalculateInstallment(params.Value, params.Duration),
		IsActive:                    true,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", params.Name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name,
		"value", group.Value, "duration", group.Duration)
	return group, nil
}

// Get retrieves a group by ID.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	return s.store.GetGroup(ctx, groupID)
}

// List retrieves all active groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Update validates and persists changed group fields, recomputing the
// installment amount from the new value and duration.
func (s *GroupService) Update(ctx context.Context, groupID string, params GroupParams) (*models.Group, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Name = params.Name
	group.Value = params.Value
	group.NumberOfSubscribers = params.NumberOfSubscribers
	group.Duration = params.Duration
	group.StartDate = params.StartDate
	group.ForemanCommissionPercentage = params.ForemanCommissionPercentage
	group.InstallmentAmount = calculator.CalculateInstallment(params.Value, params.Duration)

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("UpdateGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Group updated", "group_id", groupID)
	return group, nil
}

// Delete removes a group. Whether owned installments and enrollments block
// the delete or go with it is the store's cascade policy.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if groupID == "" {
		return invalid("groupId", "must not be empty")
	}
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}
