package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

// PledgeRepository defines the interface for pledge data operations
type PledgeRepository interface {
	// Create creates a new pledge
	Create(ctx context.Context, pledge *domain.Pledge) error

	// GetByID retrieves a pledge by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error)

	// ListByGroup retrieves all pledges for a group
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Pledge, error)

	// ListByIDs retrieves pledges by their IDs
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Pledge, error)

	// Update persists an updated pledge snapshot
	Update(ctx context.Context, pledge *domain.Pledge) error

	// Delete removes a pledge
	Delete(ctx context.Context, id uuid.UUID) error

	// CreatePaymentEvent records a contribution applied to a pledge
	CreatePaymentEvent(ctx context.Context, event *domain.PaymentEvent) error

	// ListPaymentEventsByGroup retrieves the contribution history for a group
	ListPaymentEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.PaymentEvent, error)
}

// CommitmentRepository defines the interface for recurring commitment data operations
type CommitmentRepository interface {
	// Create creates a new recurring commitment
	Create(ctx context.Context, commitment *domain.RecurringCommitment) error

	// GetByID retrieves a commitment by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringCommitment, error)

	// ListByGroup retrieves all commitments for a group
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.RecurringCommitment, error)

	// ListActive retrieves all active commitments across groups
	ListActive(ctx context.Context) ([]*domain.RecurringCommitment, error)

	// Update persists an updated commitment snapshot
	Update(ctx context.Context, commitment *domain.RecurringCommitment) error
}

// GroupRepository defines the interface for group, membership and sub-goal data operations
type GroupRepository interface {
	// GetByID retrieves a group by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// GetMembership retrieves a user's membership in a group
	GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*domain.GroupMembership, error)

	// ListMemberships retrieves all memberships for a group
	ListMemberships(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMembership, error)

	// UpdateMembership persists a membership role change
	UpdateMembership(ctx context.Context, membership *domain.GroupMembership) error

	// DeleteMembership removes a user from a group
	DeleteMembership(ctx context.Context, groupID, userID uuid.UUID) error

	// TransferOwnership persists both role changes of an ownership transfer in
	// a single transaction
	TransferOwnership(ctx context.Context, newOwner, formerOwner *domain.GroupMembership) error

	// CreateBlock records a durable block
	CreateBlock(ctx context.Context, block *domain.BlockRecord) error

	// GetBlock retrieves a block record for a user in a group
	GetBlock(ctx context.Context, groupID, userID uuid.UUID) (*domain.BlockRecord, error)

	// DeleteBlock clears a block record
	DeleteBlock(ctx context.Context, groupID, userID uuid.UUID) error

	// ListBlockedUserIDs retrieves the blocked user IDs for a group
	ListBlockedUserIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)

	// ListSubGoals retrieves a group's sub-goals ordered for display
	ListSubGoals(ctx context.Context, groupID uuid.UUID) ([]*domain.SubGoal, error)

	// UpdateSubGoal persists an updated sub-goal snapshot
	UpdateSubGoal(ctx context.Context, subGoal *domain.SubGoal) error

	// CreateAuditAction records an administrative action
	CreateAuditAction(ctx context.Context, action *domain.AuditAction) error
}
