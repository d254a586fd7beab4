package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foremenchoice/chitledger/internal/calculator"
	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// InstallmentService generates installment schedules and records auction
// results.
type InstallmentService struct {
	store storage.Store
}

// NewInstallmentService creates a new InstallmentService with the given
// storage backend.
func NewInstallmentService(store storage.Store) *InstallmentService {
	return &InstallmentService{store: store}
}

// Generate creates the full installment schedule of a group: one row per
// month of the duration, due dates advancing by calendar months from the
// group's start date with end-of-month clamping. The insert is a single
// transaction, so a failure leaves no partial schedule. Generation is not
// idempotent: a group that already has installments fails with
// ErrAlreadyGenerated and keeps its existing rows.
func (s *InstallmentService) Generate(ctx context.Context, groupID string) ([]*models.Installment, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountInstallments(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("group %s has %d installments: %w", groupID, count, storage.ErrAlreadyGenerated)
	}

	dueDates := calculator.DueDates(group.StartDate, group.Duration)
	installments := make([]*models.Installment, 0, group.Duration)
	for i, due := range dueDates {
		installments = append(installments, &models.Installment{
			GroupID:     groupID,
			MonthNumber: i + 1,
			DueDate:     due,
		})
	}

	if err := s.store.CreateInstallments(ctx, installments); err != nil {
		slog.Error("Generate installments failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Installments generated", "group_id", groupID, "count", len(installments),
		"first_due", installments[0].DueDate)
	return installments, nil
}

// List retrieves a group's installments ordered by month number.
func (s *InstallmentService) List(ctx context.Context, groupID string) ([]*models.Installment, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListInstallments(ctx, groupID)
}

// RecordAuction stores the auction result of an installment: the prize paid
// out and the winning subscriber, who must hold an enrollment in the
// installment's group. A missing installment is reported as not-found,
// distinct from validation failures, and an installment whose auction was
// already recorded fails with ErrAlreadyRecorded.
func (s *InstallmentService) RecordAuction(ctx context.Context, installmentID string, prizeAmount float64, winnerSubscriberID string) (*models.Installment, error) {
	if installmentID == "" {
		return nil, invalid("installmentId", "must not be empty")
	}
	if winnerSubscriberID == "" {
		return nil, invalid("auctionWinnerId", "must not be empty")
	}
	if prizeAmount < 0 {
		return nil, invalid("auctionPrizeAmount", "must not be negative")
	}

	inst, err := s.store.GetInstallment(ctx, installmentID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.store.IsEnrolled(ctx, inst.GroupID, winnerSubscriberID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("winner %s is not enrolled in group %s: %w",
			winnerSubscriberID, inst.GroupID, storage.ErrConflict)
	}

	if err := s.store.RecordAuction(ctx, installmentID, prizeAmount, winnerSubscriberID); err != nil {
		slog.Error("RecordAuction failed", "installment_id", installmentID, "error", err)
		return nil, err
	}

	slog.Info("Auction recorded", "installment_id", installmentID,
		"group_id", inst.GroupID, "winner_id", winnerSubscriberID, "prize", prizeAmount)
	return s.store.GetInstallment(ctx, installmentID)
}
