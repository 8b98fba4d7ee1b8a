package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// ValidFrequency reports whether freq is one of the supported cadences.
func ValidFrequency(freq string) bool {
	switch freq {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// RecurringCommitment is a standing instruction to pledge a fixed amount on a
// cadence. It is independent of any single pledge record; each due occurrence
// is expected to materialize a pledge.
type RecurringCommitment struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	GroupID         uuid.UUID       `json:"group_id" db:"group_id"`
	MemberID        uuid.UUID       `json:"member_id" db:"member_id"`
	AmountPerPeriod decimal.Decimal `json:"amount_per_period" db:"amount_per_period"`
	Currency        string          `json:"currency" db:"currency"`
	Frequency       string          `json:"frequency" db:"frequency"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty" db:"end_date"`
	IsActive        bool            `json:"is_active" db:"is_active"`
	PaymentCount    int             `json:"payment_count" db:"payment_count"`
	TotalPaid       decimal.Decimal `json:"total_paid" db:"total_paid"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateCommitmentRequest struct {
	GroupID         uuid.UUID       `json:"group_id" validate:"required"`
	MemberID        uuid.UUID       `json:"member_id" validate:"required"`
	AmountPerPeriod decimal.Decimal `json:"amount_per_period" validate:"required"`
	Currency        string          `json:"currency" validate:"required,len=3"`
	Frequency       string          `json:"frequency" validate:"required,oneof=weekly biweekly monthly quarterly"`
	StartDate       time.Time       `json:"start_date" validate:"required"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
}

type CommitmentResponse struct {
	Commitment  *RecurringCommitment `json:"commitment"`
	NextDueDate *time.Time           `json:"next_due_date,omitempty"`
}
