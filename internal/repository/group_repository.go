package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `
		SELECT id, name, goal_amount, currency, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group domain.Group
	err := r.db.GetContext(ctx, &group, query, id)
	if err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *groupRepository) GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*domain.GroupMembership, error) {
	query := `
		SELECT id, group_id, user_id, role, joined_at
		FROM group_memberships
		WHERE group_id = $1 AND user_id = $2
	`

	var membership domain.GroupMembership
	err := r.db.GetContext(ctx, &membership, query, groupID, userID)
	if err != nil {
		return nil, err
	}

	return &membership, nil
}

func (r *groupRepository) ListMemberships(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMembership, error) {
	query := `
		SELECT id, group_id, user_id, role, joined_at
		FROM group_memberships
		WHERE group_id = $1
		ORDER BY joined_at
	`

	var memberships []*domain.GroupMembership
	err := r.db.SelectContext(ctx, &memberships, query, groupID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *groupRepository) UpdateMembership(ctx context.Context, membership *domain.GroupMembership) error {
	query := `
		UPDATE group_memberships
		SET role = $3
		WHERE group_id = $1 AND user_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, membership.GroupID, membership.UserID, membership.Role)
	return err
}

func (r *groupRepository) DeleteMembership(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `DELETE FROM group_memberships WHERE group_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}

// TransferOwnership writes both role changes in one transaction so the group
// never observes zero or two owners.
func (r *groupRepository) TransferOwnership(ctx context.Context, newOwner, formerOwner *domain.GroupMembership) error {
	query := `
		UPDATE group_memberships
		SET role = $3
		WHERE group_id = $1 AND user_id = $2
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, newOwner.GroupID, newOwner.UserID, newOwner.Role); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, formerOwner.GroupID, formerOwner.UserID, formerOwner.Role); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *groupRepository) CreateBlock(ctx context.Context, block *domain.BlockRecord) error {
	query := `
		INSERT INTO block_records (id, group_id, user_id, blocked_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		block.ID,
		block.GroupID,
		block.UserID,
		block.BlockedBy,
		block.Reason,
		block.CreatedAt,
	)

	return err
}

func (r *groupRepository) GetBlock(ctx context.Context, groupID, userID uuid.UUID) (*domain.BlockRecord, error) {
	query := `
		SELECT id, group_id, user_id, blocked_by, reason, created_at
		FROM block_records
		WHERE group_id = $1 AND user_id = $2
	`

	var block domain.BlockRecord
	err := r.db.GetContext(ctx, &block, query, groupID, userID)
	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (r *groupRepository) DeleteBlock(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `DELETE FROM block_records WHERE group_id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}

func (r *groupRepository) ListBlockedUserIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM block_records WHERE group_id = $1`

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query, groupID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *groupRepository) ListSubGoals(ctx context.Context, groupID uuid.UUID) ([]*domain.SubGoal, error) {
	query := `
		SELECT id, group_id, title, target_amount, current_amount, is_completed, order_index, created_at
		FROM sub_goals
		WHERE group_id = $1
		ORDER BY order_index
	`

	var subGoals []*domain.SubGoal
	err := r.db.SelectContext(ctx, &subGoals, query, groupID)
	if err != nil {
		return nil, err
	}

	return subGoals, nil
}

func (r *groupRepository) UpdateSubGoal(ctx context.Context, subGoal *domain.SubGoal) error {
	query := `
		UPDATE sub_goals
		SET title = $2, target_amount = $3, current_amount = $4, is_completed = $5, order_index = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		subGoal.ID,
		subGoal.Title,
		subGoal.TargetAmount,
		subGoal.CurrentAmount,
		subGoal.IsCompleted,
		subGoal.OrderIndex,
	)

	return err
}

func (r *groupRepository) CreateAuditAction(ctx context.Context, action *domain.AuditAction) error {
	query := `
		INSERT INTO audit_actions (id, group_id, actor_id, target_id, action, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		action.ID,
		action.GroupID,
		action.ActorID,
		action.TargetID,
		action.Action,
		action.Detail,
		action.CreatedAt,
	)

	return err
}
