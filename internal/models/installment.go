package models

import "time"

// Installment is one month's scheduled collection/auction event of a Group.
// Rows are created in bulk by the scheduler, one per month of the group's
// duration, and updated once when the month's auction is recorded.
type Installment struct {
	// ID is the unique identifier for the installment (UUID format).
	ID string

	// GroupID references the owning group.
	GroupID string

	// MonthNumber runs 1..duration and is unique within the group.
	MonthNumber int

	// DueDate is the group's start date advanced by MonthNumber-1 calendar
	// months, day clamped to the end of the target month.
	DueDate time.Time

	// IsAuctionConducted flips to true when auction details are recorded;
	// re-recording is rejected.
	IsAuctionConducted bool

	// AuctionPrizeAmount is the winner's payout. Nil until the auction is
	// recorded.
	AuctionPrizeAmount *float64

	// AuctionWinnerID references the winning subscriber, who must hold an
	// enrollment in the installment's group. Nil until recorded.
	AuctionWinnerID *string

	// IsCompleted marks the installment as fully settled.
	IsCompleted bool
}
