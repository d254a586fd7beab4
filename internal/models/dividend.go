package models

import "time"

// Dividend is one member's share of an auction discount, net of foreman
// commission. Distribution writes one row per non-winning enrolled member,
// all carrying the same share value. The share is applied as computed; a
// commission larger than the discount yields a negative share.
type Dividend struct {
	// ID is the unique identifier for the dividend (UUID format).
	ID string

	// GroupID references the group whose auction produced the dividend.
	GroupID string

	// SubscriberID references the receiving (non-winning) member.
	SubscriberID string

	// AuctionDate is the calendar date of the auction event.
	AuctionDate time.Time

	// DividendAmount is the per-member share.
	DividendAmount float64

	// DistributionDate is the calendar date the share was recorded. This is
	// captured from the wall clock at write time; every other date in the
	// system is caller-supplied.
	DistributionDate time.Time
}

// DividendDetail is a dividend joined with the member's name, as rendered in
// the dividend history report.
type DividendDetail struct {
	Dividend
	SubscriberName string
}
