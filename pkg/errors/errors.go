package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrPledgeNotFound     = errors.New("pledge not found")
	ErrPledgeAlreadyPaid  = errors.New("pledge is already fully paid")
	ErrOverpayment        = errors.New("payment exceeds remaining pledge amount")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrPledgeHasPayments  = errors.New("pledge has recorded payments")
	ErrCommitmentNotFound = errors.New("commitment not found")
	ErrCommitmentInactive = errors.New("commitment is already cancelled")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrInvalidFrequency   = errors.New("unsupported frequency")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNotAuthorized      = errors.New("caller is not authorized for this action")
	ErrInvalidTargetRole  = errors.New("target role does not permit this action")
	ErrCannotActOnSelf    = errors.New("action cannot target the caller")
	ErrCannotActOnOwner   = errors.New("action cannot target the group owner")
	ErrConfirmationNeeded = errors.New("confirmation phrase does not match")
	ErrGroupNotFound      = errors.New("group not found")
	ErrAlreadyBlocked     = errors.New("user is already blocked")
	ErrBlockNotFound      = errors.New("block record not found")
	ErrUnknownBulkAction  = errors.New("unknown bulk action")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodePledgeNotFound       = "PLEDGE_NOT_FOUND"
	ErrCodePledgeAlreadyPaid    = "PLEDGE_ALREADY_PAID"
	ErrCodeOverpayment          = "OVERPAYMENT"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodePledgeHasPayments    = "PLEDGE_HAS_PAYMENTS"
	ErrCodeCommitmentNotFound   = "COMMITMENT_NOT_FOUND"
	ErrCodeCommitmentInactive   = "COMMITMENT_INACTIVE"
	ErrCodeInvalidDateRange     = "INVALID_DATE_RANGE"
	ErrCodeInvalidFrequency     = "INVALID_FREQUENCY"
	ErrCodeMembershipNotFound   = "MEMBERSHIP_NOT_FOUND"
	ErrCodeNotAuthorized        = "NOT_AUTHORIZED"
	ErrCodeInvalidTargetRole    = "INVALID_TARGET_ROLE"
	ErrCodeCannotActOnSelf      = "CANNOT_ACT_ON_SELF"
	ErrCodeCannotActOnOwner     = "CANNOT_ACT_ON_OWNER"
	ErrCodeConfirmationMismatch = "CONFIRMATION_MISMATCH"
	ErrCodeGroupNotFound        = "GROUP_NOT_FOUND"
	ErrCodeAlreadyBlocked       = "ALREADY_BLOCKED"
	ErrCodeBlockNotFound        = "BLOCK_NOT_FOUND"
	ErrCodeUnknownBulkAction    = "UNKNOWN_BULK_ACTION"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapPledgeNotFound(pledgeID string) *BusinessError {
	return NewBusinessError(
		ErrCodePledgeNotFound,
		fmt.Sprintf("Pledge with ID %s not found", pledgeID),
		ErrPledgeNotFound,
	)
}

func WrapPledgeAlreadyPaid(pledgeID string) *BusinessError {
	return NewBusinessError(
		ErrCodePledgeAlreadyPaid,
		fmt.Sprintf("Pledge with ID %s is already fully paid", pledgeID),
		ErrPledgeAlreadyPaid,
	)
}

func WrapOverpayment(remaining, attempted string) *BusinessError {
	return NewBusinessError(
		ErrCodeOverpayment,
		fmt.Sprintf("Payment of %s exceeds remaining amount %s", attempted, remaining),
		ErrOverpayment,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapPledgeHasPayments(pledgeID string) *BusinessError {
	return NewBusinessError(
		ErrCodePledgeHasPayments,
		fmt.Sprintf("Pledge with ID %s has recorded payments and cannot be removed", pledgeID),
		ErrPledgeHasPayments,
	)
}

func WrapCommitmentInactive(commitmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCommitmentInactive,
		fmt.Sprintf("Commitment with ID %s is already cancelled", commitmentID),
		ErrCommitmentInactive,
	)
}

func WrapInvalidDateRange(start, end string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("End date %s is before start date %s", end, start),
		ErrInvalidDateRange,
	)
}

func WrapInvalidFrequency(freq string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidFrequency,
		fmt.Sprintf("Unsupported frequency: %s", freq),
		ErrInvalidFrequency,
	)
}

func WrapNotAuthorized(action string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotAuthorized,
		fmt.Sprintf("Caller is not authorized to %s", action),
		ErrNotAuthorized,
	)
}

func WrapInvalidTargetRole(action, role string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTargetRole,
		fmt.Sprintf("Cannot %s a member with role %s", action, role),
		ErrInvalidTargetRole,
	)
}

func WrapCannotActOnSelf(action string) *BusinessError {
	return NewBusinessError(
		ErrCodeCannotActOnSelf,
		fmt.Sprintf("Cannot %s yourself", action),
		ErrCannotActOnSelf,
	)
}

func WrapCannotActOnOwner(action string) *BusinessError {
	return NewBusinessError(
		ErrCodeCannotActOnOwner,
		fmt.Sprintf("Cannot %s the group owner", action),
		ErrCannotActOnOwner,
	)
}

func WrapConfirmationMismatch() *BusinessError {
	return NewBusinessError(
		ErrCodeConfirmationMismatch,
		"Ownership transfer requires the exact confirmation phrase",
		ErrConfirmationNeeded,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
