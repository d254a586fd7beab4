package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/foremenchoice/chitledger/internal/calculator"
	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// DividendService computes and distributes auction dividends.
type DividendService struct {
	store storage.Store

	// now is the wall clock for the distribution date; swapped in tests.
	now func() time.Time
}

// NewDividendService creates a new DividendService with the given storage
// backend.
func NewDividendService(store storage.Store) *DividendService {
	return &DividendService{store: store, now: time.Now}
}

// Distribute computes the per-member dividend of a conducted auction and
// writes one dividend row for every enrolled member except the winner, all
// carrying the same share. The share is the winner's forgone discount net
// of foreman commission split across the other members; it is recorded
// as computed, so a commission above the discount produces negative rows.
// A group with a single member distributes nothing (share 0, no rows). The
// distribution date is captured from the wall clock; the auction date is
// the installment's due date. Distributing the same month twice fails with
// the conflict error and writes nothing.
func (s *DividendService) Distribute(ctx context.Context, groupID string, monthNumber int, winningBidDiscountPercent float64) ([]*models.Dividend, error) {
	if winningBidDiscountPercent < 0 {
		return nil, invalid("winningBidDiscountPercentage", "must not be negative")
	}
	if monthNumber < 1 {
		return nil, invalid("monthNumber", "must be at least 1")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	inst, err := s.store.GetInstallmentByMonth(ctx, groupID, monthNumber)
	if err != nil {
		return nil, err
	}
	if !inst.IsAuctionConducted || inst.AuctionWinnerID == nil {
		return nil, fmt.Errorf("no auction recorded for group %s month %d: %w",
			groupID, monthNumber, storage.ErrConflict)
	}

	roster, err := s.store.ListEnrollments(ctx, groupID)
	if err != nil {
		return nil, err
	}

	share := calculator.CalculateDividend(group.Value, winningBidDiscountPercent,
		group.Commission(), len(roster))

	distributionDate := s.now()
	var dividends []*models.Dividend
	for _, member := range roster {
		if member.SubscriberID == *inst.AuctionWinnerID {
			continue
		}
		dividends = append(dividends, &models.Dividend{
			GroupID:          groupID,
			SubscriberID:     member.SubscriberID,
			AuctionDate:      inst.DueDate,
			DividendAmount:   share,
			DistributionDate: distributionDate,
		})
	}
	if len(dividends) == 0 {
		slog.Info("No dividends to distribute", "group_id", groupID, "month", monthNumber,
			"members", len(roster))
		return nil, nil
	}

	if err := s.store.CreateDividends(ctx, dividends); err != nil {
		slog.Error("Distribute dividends failed", "group_id", groupID, "month", monthNumber, "error", err)
		return nil, err
	}

	slog.Info("Dividends distributed", "group_id", groupID, "month", monthNumber,
		"share", share, "members", len(dividends))
	return dividends, nil
}

// History retrieves a group's dividend history with member names.
func (s *DividendService) History(ctx context.Context, groupID string) ([]*models.DividendDetail, error) {
	if groupID == "" {
		return nil, invalid("groupId", "must not be empty")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListDividends(ctx, groupID)
}
