// Package calculator holds the chit fund arithmetic: installment and
// dividend amounts plus the calendar rules of the installment schedule.
package calculator

import "time"

// CalculateInstallment computes the monthly installment for a chit of the
// given total value and duration in months. Returns 0 for a non-positive
// duration.
func CalculateInstallment(chitValue float64, durationMonths int) float64 {
	if durationMonths <= 0 {
		return 0
	}
	return chitValue / float64(durationMonths)
}

// CalculateDividend computes the per-member dividend after an auction: the
// winner's forgone discount net of foreman commission, shared equally among
// the numMembers-1 non-winners. Returns 0 for a degenerate group of one
// member or fewer. The result goes negative when the commission exceeds the
// discount; that is intentional and left to the caller.
func CalculateDividend(chitValue, winningBidDiscountPercent, foremanCommissionPercent float64, numMembers int) float64 {
	discount := chitValue * winningBidDiscountPercent / 100
	commission := chitValue * foremanCommissionPercent / 100
	if numMembers > 1 {
		return (discount - commission) / float64(numMembers-1)
	}
	return 0
}

// AddMonths advances a date by n calendar months: the month component is
// incremented with year carry and the day is clamped to the last valid day
// of the target month, so Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap
// year), never Mar 3. A negative n moves backwards with the same clamping.
// time.Time.AddDate is unsuitable here because it normalizes overflow days
// into the next month.
func AddMonths(date time.Time, n int) time.Time {
	month := int(date.Month()) - 1 + n
	year := date.Year() + month/12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}

	day := date.Day()
	if last := daysIn(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, date.Location())
}

// DueDates builds the installment due dates for a schedule: month k of
// 1..durationMonths is due startDate advanced by k-1 months.
func DueDates(startDate time.Time, durationMonths int) []time.Time {
	dates := make([]time.Time, 0, durationMonths)
	for k := 1; k <= durationMonths; k++ {
		dates = append(dates, AddMonths(startDate, k-1))
	}
	return dates
}

// daysIn returns the number of days in the given month; day 0 of the next
// month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
