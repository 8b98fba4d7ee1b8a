package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

type commitmentRepository struct {
	db *sqlx.DB
}

func NewCommitmentRepository(db *sqlx.DB) CommitmentRepository {
	return &commitmentRepository{db: db}
}

func (r *commitmentRepository) Create(ctx context.Context, commitment *domain.RecurringCommitment) error {
	query := `
		INSERT INTO recurring_commitments (id, group_id, member_id, amount_per_period, currency, frequency, start_date, end_date, is_active, payment_count, total_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		commitment.ID,
		commitment.GroupID,
		commitment.MemberID,
		commitment.AmountPerPeriod,
		commitment.Currency,
		commitment.Frequency,
		commitment.StartDate,
		commitment.EndDate,
		commitment.IsActive,
		commitment.PaymentCount,
		commitment.TotalPaid,
		commitment.CreatedAt,
		commitment.UpdatedAt,
	)

	return err
}

func (r *commitmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringCommitment, error) {
	query := `
		SELECT id, group_id, member_id, amount_per_period, currency, frequency, start_date, end_date, is_active, payment_count, total_paid, created_at, updated_at
		FROM recurring_commitments
		WHERE id = $1
	`

	var commitment domain.RecurringCommitment
	err := r.db.GetContext(ctx, &commitment, query, id)
	if err != nil {
		return nil, err
	}

	return &commitment, nil
}

func (r *commitmentRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.RecurringCommitment, error) {
	query := `
		SELECT id, group_id, member_id, amount_per_period, currency, frequency, start_date, end_date, is_active, payment_count, total_paid, created_at, updated_at
		FROM recurring_commitments
		WHERE group_id = $1
		ORDER BY created_at
	`

	var commitments []*domain.RecurringCommitment
	err := r.db.SelectContext(ctx, &commitments, query, groupID)
	if err != nil {
		return nil, err
	}

	return commitments, nil
}

func (r *commitmentRepository) ListActive(ctx context.Context) ([]*domain.RecurringCommitment, error) {
	query := `
		SELECT id, group_id, member_id, amount_per_period, currency, frequency, start_date, end_date, is_active, payment_count, total_paid, created_at, updated_at
		FROM recurring_commitments
		WHERE is_active = true
		ORDER BY created_at
	`

	var commitments []*domain.RecurringCommitment
	err := r.db.SelectContext(ctx, &commitments, query)
	if err != nil {
		return nil, err
	}

	return commitments, nil
}

func (r *commitmentRepository) Update(ctx context.Context, commitment *domain.RecurringCommitment) error {
	query := `
		UPDATE recurring_commitments
		SET end_date = $2, is_active = $3, payment_count = $4, total_paid = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		commitment.ID,
		commitment.EndDate,
		commitment.IsActive,
		commitment.PaymentCount,
		commitment.TotalPaid,
		commitment.UpdatedAt,
	)

	return err
}
