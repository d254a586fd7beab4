package models

import "time"

// Group represents one chit fund: a fixed-membership rotating savings pool
// with a fixed total value and duration.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the unique display label of the group.
	Name string

	// Value is the total chit value collected over the full duration.
	Value float64

	// NumberOfSubscribers is the planned member count. In a standard chit
	// it equals Duration.
	NumberOfSubscribers int

	// Duration is the number of monthly installments.
	Duration int

	// StartDate is the calendar date of the first installment.
	StartDate time.Time

	// ForemanCommissionPercentage is the foreman's cut of each auction,
	// in percent (0-7). Nil when not configured.
	ForemanCommissionPercentage *float64

	// InstallmentAmount is Value / Duration, recomputed whenever either
	// changes.
	InstallmentAmount float64

	// IsActive marks the group as live; inactive groups are hidden from
	// listings but kept for history.
	IsActive bool
}

// Commission returns the configured foreman commission percentage, or 0.
func (g *Group) Commission() float64 {
	if g.ForemanCommissionPercentage == nil {
		return 0
	}
	return *g.ForemanCommissionPercentage
}
