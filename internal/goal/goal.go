package goal

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

var one = decimal.NewFromInt(1)

// Progress returns current/target clamped to [0, 1]. A zero or negative
// target yields 0 rather than a division error.
func Progress(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}

	ratio := current.Div(target)
	if ratio.IsNegative() {
		return decimal.Zero
	}
	if ratio.GreaterThan(one) {
		return one
	}
	return ratio
}

// AggregateOptions tunes which pledges count toward aggregates. Whether
// blocked members' history remains visible is deployment policy, so it is an
// explicit option rather than a hidden default.
type AggregateOptions struct {
	IncludeBlocked bool
	BlockedMembers map[uuid.UUID]bool
}

// DefaultAggregateOptions keeps blocked members' historical contributions.
func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{IncludeBlocked: true}
}

func (o AggregateOptions) includes(memberID uuid.UUID) bool {
	if o.IncludeBlocked {
		return true
	}
	return !o.BlockedMembers[memberID]
}

// Leaderboard folds a pledge set into contributor rankings by amount actually
// paid. Pledged-but-unpaid amounts do not count. Ties are broken by the
// earliest contribution timestamp, then by member ID, so the ordering never
// depends on map iteration order.
func Leaderboard(pledges []domain.Pledge, opts AggregateOptions) []domain.LeaderboardEntry {
	byMember := make(map[uuid.UUID]*domain.LeaderboardEntry)

	for _, p := range pledges {
		if !p.AmountPaid.IsPositive() || !opts.includes(p.MemberID) {
			continue
		}

		entry, ok := byMember[p.MemberID]
		if !ok {
			entry = &domain.LeaderboardEntry{
				MemberID:          p.MemberID,
				TotalPaid:         decimal.Zero,
				FirstContribution: p.CreatedAt,
				IsAnonymous:       p.IsAnonymous,
			}
			byMember[p.MemberID] = entry
		}

		entry.TotalPaid = entry.TotalPaid.Add(p.AmountPaid)
		if p.CreatedAt.Before(entry.FirstContribution) {
			entry.FirstContribution = p.CreatedAt
		}
		// A member stays anonymous only if every contributing pledge is.
		entry.IsAnonymous = entry.IsAnonymous && p.IsAnonymous
	}

	entries := make([]domain.LeaderboardEntry, 0, len(byMember))
	for _, entry := range byMember {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].TotalPaid.Equal(entries[j].TotalPaid) {
			return entries[i].TotalPaid.GreaterThan(entries[j].TotalPaid)
		}
		if !entries[i].FirstContribution.Equal(entries[j].FirstContribution) {
			return entries[i].FirstContribution.Before(entries[j].FirstContribution)
		}
		return entries[i].MemberID.String() < entries[j].MemberID.String()
	})

	return entries
}

// TotalPaid sums the paid amounts across a pledge set.
func TotalPaid(pledges []domain.Pledge, opts AggregateOptions) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pledges {
		if opts.includes(p.MemberID) {
			total = total.Add(p.AmountPaid)
		}
	}
	return total
}

// Project estimates when the goal will be met from observed payment history.
// With no positive average or an already-met goal it returns a descriptive
// state instead of a date; callers never see a division by zero or a date in
// the past.
func Project(goalAmount, currentAmount decimal.Decimal, history []domain.PaymentEvent, now time.Time) domain.Projection {
	remaining := goalAmount.Sub(currentAmount)

	if goalAmount.IsPositive() && !remaining.IsPositive() {
		return domain.Projection{
			State:              domain.ProjectionGoalMet,
			AverageDailyAmount: averageDaily(history, now),
			RemainingAmount:    decimal.Zero,
		}
	}

	avg := averageDaily(history, now)
	if !goalAmount.IsPositive() || !avg.IsPositive() {
		return domain.Projection{
			State:              domain.ProjectionNoActivity,
			AverageDailyAmount: avg,
			RemainingAmount:    remaining,
		}
	}

	days := remaining.Div(avg).Ceil().IntPart()
	completion := now.AddDate(0, 0, int(days))

	return domain.Projection{
		State:               domain.ProjectionEstimated,
		AverageDailyAmount:  avg,
		RemainingAmount:     remaining,
		EstimatedCompletion: &completion,
	}
}

// averageDaily computes total contributions over the observed window, with a
// minimum window of one day.
func averageDaily(history []domain.PaymentEvent, now time.Time) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	earliest := history[0].CreatedAt
	for _, event := range history {
		total = total.Add(event.Amount)
		if event.CreatedAt.Before(earliest) {
			earliest = event.CreatedAt
		}
	}

	days := int64(now.Sub(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}

	return total.Div(decimal.NewFromInt(days))
}

// SubGoalsSummary folds milestone records into display counts and totals.
func SubGoalsSummary(subGoals []domain.SubGoal) domain.SubGoalsSummary {
	summary := domain.SubGoalsSummary{
		Total:       len(subGoals),
		TotalTarget: decimal.Zero,
		TotalRaised: decimal.Zero,
	}

	for _, sg := range subGoals {
		if sg.IsCompleted {
			summary.Completed++
		} else {
			summary.InProgress++
		}
		summary.TotalTarget = summary.TotalTarget.Add(sg.TargetAmount)
		summary.TotalRaised = summary.TotalRaised.Add(sg.CurrentAmount)
	}

	return summary
}

// ApplyContribution raises a sub-goal's current amount and derives completion.
func ApplyContribution(sg domain.SubGoal, amount decimal.Decimal) domain.SubGoal {
	sg.CurrentAmount = sg.CurrentAmount.Add(amount)
	sg.IsCompleted = sg.CurrentAmount.GreaterThanOrEqual(sg.TargetAmount)
	return sg
}
