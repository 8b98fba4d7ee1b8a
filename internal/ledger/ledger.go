package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundcircle/ledger-engine/internal/domain"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"
)

// Bulk actions accepted by ApplyBulkAction.
const (
	ActionMarkPaid = "mark_paid"
	ActionReset    = "reset"
	ActionCancel   = "cancel"
)

// Epsilon absorbs rounding noise from currency-converted partial payments.
var Epsilon = decimal.NewFromFloat(0.01)

// RecordFullPayment settles the pledge in one step. Paying an already-paid
// pledge is an idempotency conflict, not a silent no-op.
func RecordFullPayment(p domain.Pledge, now time.Time) (domain.Pledge, error) {
	if p.Status == domain.PledgeStatusPaid {
		return p, customError.WrapPledgeAlreadyPaid(p.ID.String())
	}

	p.AmountPaid = p.Amount
	p.Reclassify()
	p.UpdatedAt = now
	return p, nil
}

// RecordPartialPayment applies a contribution against the pledge. The
// cumulative paid amount may exceed the pledge amount by at most Epsilon;
// anything beyond that is rejected without touching the pledge.
func RecordPartialPayment(p domain.Pledge, amount decimal.Decimal, now time.Time) (domain.Pledge, error) {
	if !amount.IsPositive() {
		return p, customError.WrapInvalidAmount(amount.String())
	}
	if p.Status == domain.PledgeStatusPaid {
		return p, customError.WrapPledgeAlreadyPaid(p.ID.String())
	}

	newPaid := p.AmountPaid.Add(amount)
	if newPaid.GreaterThan(p.Amount.Add(Epsilon)) {
		return p, customError.WrapOverpayment(p.Outstanding().String(), amount.String())
	}

	// Clamp so rounding within the epsilon never records paid > amount.
	if newPaid.GreaterThan(p.Amount) {
		newPaid = p.Amount
	}

	p.AmountPaid = newPaid
	p.Reclassify()
	p.UpdatedAt = now
	return p, nil
}

// ResetToPending is the administrative correction path: wipe the paid amount
// and return the pledge to pending.
func ResetToPending(p domain.Pledge, now time.Time) (domain.Pledge, error) {
	p.AmountPaid = decimal.Zero
	p.Reclassify()
	p.UpdatedAt = now
	return p, nil
}

// Cancel validates that the pledge may be removed. Deletion itself belongs to
// the persistence layer; a pledge with any recorded payment must be reset
// before it can be cancelled.
func Cancel(p domain.Pledge) error {
	if p.AmountPaid.IsPositive() {
		return customError.WrapPledgeHasPayments(p.ID.String())
	}
	return nil
}

// BulkResult reports the outcome for a single pledge in a bulk action.
type BulkResult struct {
	PledgeID uuid.UUID
	Pledge   *domain.Pledge
	Deleted  bool
	Err      error
}

// ApplyBulkAction applies one action to each pledge independently. One
// pledge's failure never rolls back or blocks the others; each transition is
// evaluated against that pledge's own snapshot.
func ApplyBulkAction(action string, pledges []domain.Pledge, now time.Time) []BulkResult {
	results := make([]BulkResult, 0, len(pledges))

	for _, p := range pledges {
		result := BulkResult{PledgeID: p.ID}

		switch action {
		case ActionMarkPaid:
			updated, err := RecordFullPayment(p, now)
			if err != nil {
				result.Err = err
			} else {
				result.Pledge = &updated
			}
		case ActionReset:
			updated, err := ResetToPending(p, now)
			if err != nil {
				result.Err = err
			} else {
				result.Pledge = &updated
			}
		case ActionCancel:
			if err := Cancel(p); err != nil {
				result.Err = err
			} else {
				result.Deleted = true
			}
		default:
			result.Err = customError.NewBusinessError(
				customError.ErrCodeUnknownBulkAction,
				"Unknown bulk action: "+action,
				customError.ErrUnknownBulkAction,
			)
		}

		results = append(results, result)
	}

	return results
}
