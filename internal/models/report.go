package models

import "time"

// DashboardStats holds the quick counters shown on the dashboard.
type DashboardStats struct {
	ActiveGroups      int
	ActiveSubscribers int
}

// RecentPayment is one row of the dashboard's latest-payments panel.
type RecentPayment struct {
	PaymentDate    int64
	SubscriberName string
	GroupName      string
	MonthNumber    int
	AmountPaid     float64
}

// RecentAuction is one row of the dashboard's latest-auctions panel. The
// winner name is empty for scheduled months whose auction has no winner yet.
type RecentAuction struct {
	GroupName   string
	MonthNumber int
	DueDate     time.Time
	WinnerName  string
	PrizeAmount float64
}
