package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

type pledgeRepository struct {
	db *sqlx.DB
}

func NewPledgeRepository(db *sqlx.DB) PledgeRepository {
	return &pledgeRepository{db: db}
}

func (r *pledgeRepository) Create(ctx context.Context, pledge *domain.Pledge) error {
	query := `
		INSERT INTO pledges (id, group_id, member_id, amount, amount_paid, currency, status, is_anonymous, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		pledge.ID,
		pledge.GroupID,
		pledge.MemberID,
		pledge.Amount,
		pledge.AmountPaid,
		pledge.Currency,
		pledge.Status,
		pledge.IsAnonymous,
		pledge.DueDate,
		pledge.CreatedAt,
		pledge.UpdatedAt,
	)

	return err
}

func (r *pledgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	query := `
		SELECT id, group_id, member_id, amount, amount_paid, currency, status, is_anonymous, due_date, created_at, updated_at
		FROM pledges
		WHERE id = $1
	`

	var pledge domain.Pledge
	err := r.db.GetContext(ctx, &pledge, query, id)
	if err != nil {
		return nil, err
	}

	return &pledge, nil
}

func (r *pledgeRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Pledge, error) {
	query := `
		SELECT id, group_id, member_id, amount, amount_paid, currency, status, is_anonymous, due_date, created_at, updated_at
		FROM pledges
		WHERE group_id = $1
		ORDER BY created_at
	`

	var pledges []*domain.Pledge
	err := r.db.SelectContext(ctx, &pledges, query, groupID)
	if err != nil {
		return nil, err
	}

	return pledges, nil
}

func (r *pledgeRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Pledge, error) {
	query, args, err := sqlx.In(`
		SELECT id, group_id, member_id, amount, amount_paid, currency, status, is_anonymous, due_date, created_at, updated_at
		FROM pledges
		WHERE id IN (?)
		ORDER BY created_at
	`, ids)
	if err != nil {
		return nil, err
	}

	var pledges []*domain.Pledge
	err = r.db.SelectContext(ctx, &pledges, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return pledges, nil
}

func (r *pledgeRepository) Update(ctx context.Context, pledge *domain.Pledge) error {
	query := `
		UPDATE pledges
		SET amount_paid = $2, status = $3, is_anonymous = $4, due_date = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		pledge.ID,
		pledge.AmountPaid,
		pledge.Status,
		pledge.IsAnonymous,
		pledge.DueDate,
		pledge.UpdatedAt,
	)

	return err
}

func (r *pledgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pledges WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *pledgeRepository) CreatePaymentEvent(ctx context.Context, event *domain.PaymentEvent) error {
	query := `
		INSERT INTO payment_events (id, pledge_id, group_id, member_id, amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.PledgeID,
		event.GroupID,
		event.MemberID,
		event.Amount,
		event.Currency,
		event.CreatedAt,
	)

	return err
}

func (r *pledgeRepository) ListPaymentEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.PaymentEvent, error) {
	query := `
		SELECT id, pledge_id, group_id, member_id, amount, currency, created_at
		FROM payment_events
		WHERE group_id = $1
		ORDER BY created_at
	`

	var events []*domain.PaymentEvent
	err := r.db.SelectContext(ctx, &events, query, groupID)
	if err != nil {
		return nil, err
	}

	return events, nil
}
