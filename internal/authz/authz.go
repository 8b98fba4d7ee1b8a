package authz

import (
	"time"

	"github.com/google/uuid"

	"github.com/fundcircle/ledger-engine/internal/domain"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"
)

// TransferConfirmationPhrase must be supplied verbatim to transfer ownership.
// The typed phrase is a UI affordance, but the rule that transfer is an
// explicit, irreversible act is enforced here.
const TransferConfirmationPhrase = "TRANSFER OWNERSHIP"

// Promote raises a plain member to admin. The caller must hold admin
// privileges and may not promote themselves.
func Promote(actor, target domain.GroupMembership) (domain.GroupMembership, error) {
	if !actor.IsAdmin() {
		return target, customError.WrapNotAuthorized("promote members")
	}
	if actor.UserID == target.UserID {
		return target, customError.WrapCannotActOnSelf("promote")
	}
	if target.Role != domain.RoleMember {
		return target, customError.WrapInvalidTargetRole("promote", target.Role)
	}

	target.Role = domain.RoleAdmin
	return target, nil
}

// Demote returns an admin to plain member. Only the owner may demote, never
// themselves, and never another owner.
func Demote(actor, target domain.GroupMembership) (domain.GroupMembership, error) {
	if actor.Role != domain.RoleOwner {
		return target, customError.WrapNotAuthorized("demote admins")
	}
	if actor.UserID == target.UserID {
		return target, customError.WrapCannotActOnSelf("demote")
	}
	if target.Role == domain.RoleOwner {
		return target, customError.WrapCannotActOnOwner("demote")
	}
	if target.Role != domain.RoleAdmin {
		return target, customError.WrapInvalidTargetRole("demote", target.Role)
	}

	target.Role = domain.RoleMember
	return target, nil
}

// Remove validates ejecting a member from the group. The owner can never be
// removed, and self-removal goes through a leave flow, not this path.
func Remove(actor, target domain.GroupMembership) error {
	if !actor.IsAdmin() {
		return customError.WrapNotAuthorized("remove members")
	}
	if actor.UserID == target.UserID {
		return customError.WrapCannotActOnSelf("remove")
	}
	if target.Role == domain.RoleOwner {
		return customError.WrapCannotActOnOwner("remove")
	}
	return nil
}

// Block removes the member and produces a durable block record that bars
// rejoining by invitation.
func Block(actor, target domain.GroupMembership, reason string, now time.Time) (domain.BlockRecord, error) {
	if err := Remove(actor, target); err != nil {
		return domain.BlockRecord{}, err
	}

	return domain.BlockRecord{
		ID:        uuid.New(),
		GroupID:   target.GroupID,
		UserID:    target.UserID,
		BlockedBy: actor.UserID,
		Reason:    reason,
		CreatedAt: now,
	}, nil
}

// Unblock validates clearing a block record. Membership is not restored; the
// user must rejoin on their own.
func Unblock(actor domain.GroupMembership, record domain.BlockRecord) error {
	if !actor.IsAdmin() {
		return customError.WrapNotAuthorized("unblock users")
	}
	if actor.GroupID != record.GroupID {
		return customError.NewBusinessError(
			customError.ErrCodeBlockNotFound,
			"Block record does not belong to this group",
			customError.ErrBlockNotFound,
		)
	}
	return nil
}

// TransferOwnership atomically makes target the owner and demotes the current
// owner to admin. Both updated memberships are returned together; persisting
// one without the other would leave the group with zero or two owners, which
// callers must treat as a single state change.
func TransferOwnership(actor, target domain.GroupMembership, confirmation string) (newOwner, formerOwner domain.GroupMembership, err error) {
	if actor.Role != domain.RoleOwner {
		return target, actor, customError.WrapNotAuthorized("transfer ownership")
	}
	if actor.UserID == target.UserID {
		return target, actor, customError.WrapCannotActOnSelf("transfer ownership to")
	}
	if confirmation != TransferConfirmationPhrase {
		return target, actor, customError.WrapConfirmationMismatch()
	}

	target.Role = domain.RoleOwner
	actor.Role = domain.RoleAdmin
	return target, actor, nil
}
