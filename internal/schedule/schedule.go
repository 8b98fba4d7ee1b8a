package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundcircle/ledger-engine/internal/domain"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"
)

// NextDueDate returns the first occurrence of the commitment cadence strictly
// after now. It recomputes from startDate on every call; there is no stored
// cursor to tick, so a caller that was offline for months gets the same
// answer as one that polled every minute.
func NextDueDate(startDate time.Time, frequency string, now time.Time) (time.Time, error) {
	if !domain.ValidFrequency(frequency) {
		return time.Time{}, customError.WrapInvalidFrequency(frequency)
	}

	// Occurrences are indexed from the start date so that monthly clamping
	// never compounds: Jan 31 yields Feb 28 and then Mar 31, not Mar 28.
	next := startDate
	for k := 1; !next.After(now); k++ {
		next = occurrence(startDate, frequency, k)
	}
	return next, nil
}

// occurrence returns the k-th occurrence after startDate (k=0 is startDate).
func occurrence(startDate time.Time, frequency string, k int) time.Time {
	switch frequency {
	case domain.FrequencyWeekly:
		return startDate.AddDate(0, 0, 7*k)
	case domain.FrequencyBiweekly:
		return startDate.AddDate(0, 0, 14*k)
	case domain.FrequencyMonthly:
		return addMonthsClamped(startDate, k)
	case domain.FrequencyQuarterly:
		return addMonthsClamped(startDate, 3*k)
	}
	return startDate
}

// addMonthsClamped advances by calendar months, preserving the day-of-month
// and clamping on short months (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	targetMonth := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	lastDay := daysIn(targetMonth.Year(), targetMonth.Month(), t.Location())
	if day > lastDay {
		day = lastDay
	}

	hour, min, sec := t.Clock()
	return time.Date(targetMonth.Year(), targetMonth.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// IsDue reports whether the commitment has an occurrence that has come due by
// now: it is active, has started, and the most recent occurrence on or before
// now does not fall past the end date.
func IsDue(c domain.RecurringCommitment, now time.Time) bool {
	if !c.IsActive || c.StartDate.After(now) {
		return false
	}

	last := lastOccurrence(c.StartDate, c.Frequency, now)
	if c.EndDate != nil && last.After(*c.EndDate) {
		return false
	}
	return true
}

// DueOn reports whether an occurrence falls on the given calendar day. The
// materialization job uses this to emit exactly one pledge per occurrence.
func DueOn(c domain.RecurringCommitment, day time.Time) bool {
	if !c.IsActive || c.StartDate.After(endOfDay(day)) {
		return false
	}

	last := lastOccurrence(c.StartDate, c.Frequency, endOfDay(day))
	if c.EndDate != nil && last.After(*c.EndDate) {
		return false
	}
	return sameDay(last, day)
}

// lastOccurrence returns the most recent occurrence at or before now.
// StartDate must not be after now.
func lastOccurrence(startDate time.Time, frequency string, now time.Time) time.Time {
	last := startDate
	for k := 1; ; k++ {
		next := occurrence(startDate, frequency, k)
		if next.After(now) {
			return last
		}
		last = next
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}

// NewCommitment validates and builds a commitment. A start date in the past
// is valid; the scheduler simply reports the next future occurrence.
func NewCommitment(req *domain.CreateCommitmentRequest, now time.Time) (domain.RecurringCommitment, error) {
	if !req.AmountPerPeriod.IsPositive() {
		return domain.RecurringCommitment{}, customError.WrapInvalidAmount(req.AmountPerPeriod.String())
	}
	if !domain.ValidFrequency(req.Frequency) {
		return domain.RecurringCommitment{}, customError.WrapInvalidFrequency(req.Frequency)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return domain.RecurringCommitment{}, customError.WrapInvalidDateRange(
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}

	return domain.RecurringCommitment{
		ID:              uuid.New(),
		GroupID:         req.GroupID,
		MemberID:        req.MemberID,
		AmountPerPeriod: req.AmountPerPeriod,
		Currency:        req.Currency,
		Frequency:       req.Frequency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IsActive:        true,
		PaymentCount:    0,
		TotalPaid:       decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Cancel deactivates the commitment permanently. Historical totals are kept
// as they were; cancellation never rewrites payment history.
func Cancel(c domain.RecurringCommitment, now time.Time) (domain.RecurringCommitment, error) {
	if !c.IsActive {
		return c, customError.WrapCommitmentInactive(c.ID.String())
	}

	c.IsActive = false
	c.UpdatedAt = now
	return c, nil
}

// RecordPayment bumps the cumulative totals after a materialized pledge is paid.
func RecordPayment(c domain.RecurringCommitment, amount decimal.Decimal, now time.Time) (domain.RecurringCommitment, error) {
	if !amount.IsPositive() {
		return c, customError.WrapInvalidAmount(amount.String())
	}

	c.PaymentCount++
	c.TotalPaid = c.TotalPaid.Add(amount)
	c.UpdatedAt = now
	return c, nil
}
