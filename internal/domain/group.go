package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Group is a fundraising circle with a single monetary goal.
type Group struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	GoalAmount decimal.Decimal `json:"goal_amount" db:"goal_amount"`
	Currency   string          `json:"currency" db:"currency"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// SubGoal is a named milestone inside a group's overall goal.
type SubGoal struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	GroupID       uuid.UUID       `json:"group_id" db:"group_id"`
	Title         string          `json:"title" db:"title"`
	TargetAmount  decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" db:"current_amount"`
	IsCompleted   bool            `json:"is_completed" db:"is_completed"`
	OrderIndex    int             `json:"order_index" db:"order_index"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type GroupSummaryResponse struct {
	GroupID       uuid.UUID          `json:"group_id"`
	GoalAmount    decimal.Decimal    `json:"goal_amount"`
	CurrentAmount decimal.Decimal    `json:"current_amount"`
	Progress      decimal.Decimal    `json:"progress"`
	Currency      string             `json:"currency"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	SubGoals      SubGoalsSummary    `json:"sub_goals"`
	Projection    Projection         `json:"projection"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// LeaderboardEntry ranks a contributor by total amount actually paid.
type LeaderboardEntry struct {
	MemberID          uuid.UUID       `json:"member_id"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	FirstContribution time.Time       `json:"first_contribution"`
	IsAnonymous       bool            `json:"is_anonymous"`
}

type SubGoalsSummary struct {
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	InProgress  int             `json:"in_progress"`
	TotalTarget decimal.Decimal `json:"total_target"`
	TotalRaised decimal.Decimal `json:"total_raised"`
}

// Projection states. Estimated carries a completion date; the other two are
// descriptive results for callers that would otherwise divide by zero.
const (
	ProjectionGoalMet    = "goal_met"
	ProjectionNoActivity = "no_activity"
	ProjectionEstimated  = "estimated"
)

type Projection struct {
	State               string          `json:"state"`
	AverageDailyAmount  decimal.Decimal `json:"average_daily_amount"`
	RemainingAmount     decimal.Decimal `json:"remaining_amount"`
	EstimatedCompletion *time.Time      `json:"estimated_completion,omitempty"`
}
