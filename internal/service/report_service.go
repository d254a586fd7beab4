package service

import (
	"context"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/storage"
)

// recentLimit bounds the dashboard's latest-activity panels.
const recentLimit = 5

// ReportService serves the dashboard and the tabular reports.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new ReportService with the given storage
// backend.
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// Dashboard bundles the quick stats and latest-activity panels.
type Dashboard struct {
	Stats          *models.DashboardStats
	RecentPayments []*models.RecentPayment
	RecentAuctions []*models.RecentAuction
}

// Dashboard returns the active-group/subscriber counters plus the most
// recent payments and auctions.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.RecentPayments(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	auctions, err := s.store.RecentAuctions(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, RecentPayments: payments, RecentAuctions: auctions}, nil
}

// AuctionHistory returns every conducted auction, newest first. A negative
// limit in the store means no limit.
func (s *ReportService) AuctionHistory(ctx context.Context) ([]*models.RecentAuction, error) {
	return s.store.RecentAuctions(ctx, -1)
}

// PaymentHistory returns every recorded payment, newest first.
func (s *ReportService) PaymentHistory(ctx context.Context) ([]*models.RecentPayment, error) {
	return s.store.RecentPayments(ctx, -1)
}

// DividendHistory returns every distributed dividend across groups.
func (s *ReportService) DividendHistory(ctx context.Context) ([]*models.DividendDetail, error) {
	return s.store.ListDividendHistory(ctx)
}
