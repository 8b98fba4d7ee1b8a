package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// GroupMembership ties a user to a group. Exactly one owner exists per group
// at all times except mid ownership transfer.
type GroupMembership struct {
	ID       uuid.UUID `json:"id" db:"id"`
	GroupID  uuid.UUID `json:"group_id" db:"group_id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Role     string    `json:"role" db:"role"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}

// IsAdmin reports whether the membership carries admin privileges. The owner
// is implicitly an admin for permission checks.
func (m GroupMembership) IsAdmin() bool {
	return m.Role == RoleAdmin || m.Role == RoleOwner
}

// BlockRecord durably bars a user from rejoining a group. Blocking removes
// the membership; unblocking clears this record without restoring it.
type BlockRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	BlockedBy uuid.UUID `json:"blocked_by" db:"blocked_by"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuditAction describes an administrative mutation for the caller to log.
type AuditAction struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	ActorID   uuid.UUID `json:"actor_id" db:"actor_id"`
	TargetID  uuid.UUID `json:"target_id" db:"target_id"`
	Action    string    `json:"action" db:"action"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type MembershipActionRequest struct {
	ActorID uuid.UUID `json:"actor_id" validate:"required"`
	Reason  string    `json:"reason,omitempty"`
}

type TransferOwnershipRequest struct {
	ActorID      uuid.UUID `json:"actor_id" validate:"required"`
	TargetID     uuid.UUID `json:"target_id" validate:"required"`
	Confirmation string    `json:"confirmation" validate:"required"`
}
