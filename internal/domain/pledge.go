package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PledgeStatusPending = "pending"
	PledgeStatusPartial = "partial"
	PledgeStatusPaid    = "paid"
)

// Pledge represents a member's commitment to contribute a fixed amount to a group goal.
type Pledge struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	GroupID     uuid.UUID       `json:"group_id" db:"group_id"`
	MemberID    uuid.UUID       `json:"member_id" db:"member_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	Currency    string          `json:"currency" db:"currency"`
	Status      string          `json:"status" db:"status"`
	IsAnonymous bool            `json:"is_anonymous" db:"is_anonymous"`
	DueDate     *time.Time      `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// PledgeStatusFor classifies a pledge from its amounts. Status is always derived;
// nothing else in the system may decide it.
func PledgeStatusFor(amount, amountPaid decimal.Decimal) string {
	switch {
	case amountPaid.GreaterThanOrEqual(amount):
		return PledgeStatusPaid
	case amountPaid.IsPositive():
		return PledgeStatusPartial
	default:
		return PledgeStatusPending
	}
}

// Reclassify recomputes the derived status from the current amounts.
func (p *Pledge) Reclassify() {
	p.Status = PledgeStatusFor(p.Amount, p.AmountPaid)
}

// Outstanding returns the unpaid remainder of the pledge.
func (p *Pledge) Outstanding() decimal.Decimal {
	return p.Amount.Sub(p.AmountPaid)
}

// PaymentEvent records a single contribution applied to a pledge.
type PaymentEvent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	PledgeID  uuid.UUID       `json:"pledge_id" db:"pledge_id"`
	GroupID   uuid.UUID       `json:"group_id" db:"group_id"`
	MemberID  uuid.UUID       `json:"member_id" db:"member_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Currency  string          `json:"currency" db:"currency"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreatePledgeRequest struct {
	GroupID     uuid.UUID       `json:"group_id" validate:"required"`
	MemberID    uuid.UUID       `json:"member_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	IsAnonymous bool            `json:"is_anonymous"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

type PartialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type BulkPledgeActionRequest struct {
	Action    string      `json:"action" validate:"required,oneof=mark_paid reset cancel"`
	PledgeIDs []uuid.UUID `json:"pledge_ids" validate:"required,min=1"`
}

type BulkPledgeActionResponse struct {
	Processed int                 `json:"processed"`
	Failed    int                 `json:"failed"`
	Results   []BulkPledgeOutcome `json:"results"`
}

type BulkPledgeOutcome struct {
	PledgeID uuid.UUID `json:"pledge_id"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
}
