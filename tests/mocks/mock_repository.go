package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fundcircle/ledger-engine/internal/domain"
)

type MockPledgeRepository struct {
	mock.Mock
}

func (m *MockPledgeRepository) Create(ctx context.Context, pledge *domain.Pledge) error {
	args := m.Called(ctx, pledge)
	return args.Error(0)
}

func (m *MockPledgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pledge), args.Error(1)
}

func (m *MockPledgeRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Pledge, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockPledgeRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Pledge, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Pledge), args.Error(1)
}

func (m *MockPledgeRepository) Update(ctx context.Context, pledge *domain.Pledge) error {
	args := m.Called(ctx, pledge)
	return args.Error(0)
}

func (m *MockPledgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPledgeRepository) CreatePaymentEvent(ctx context.Context, event *domain.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPledgeRepository) ListPaymentEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.PaymentEvent, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentEvent), args.Error(1)
}

type MockCommitmentRepository struct {
	mock.Mock
}

func (m *MockCommitmentRepository) Create(ctx context.Context, commitment *domain.RecurringCommitment) error {
	args := m.Called(ctx, commitment)
	return args.Error(0)
}

func (m *MockCommitmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecurringCommitment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringCommitment), args.Error(1)
}

func (m *MockCommitmentRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.RecurringCommitment, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecurringCommitment), args.Error(1)
}

func (m *MockCommitmentRepository) ListActive(ctx context.Context) ([]*domain.RecurringCommitment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecurringCommitment), args.Error(1)
}

func (m *MockCommitmentRepository) Update(ctx context.Context, commitment *domain.RecurringCommitment) error {
	args := m.Called(ctx, commitment)
	return args.Error(0)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) GetMembership(ctx context.Context, groupID, userID uuid.UUID) (*domain.GroupMembership, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMembership), args.Error(1)
}

func (m *MockGroupRepository) ListMemberships(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupMembership, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GroupMembership), args.Error(1)
}

func (m *MockGroupRepository) UpdateMembership(ctx context.Context, membership *domain.GroupMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockGroupRepository) DeleteMembership(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) TransferOwnership(ctx context.Context, newOwner, formerOwner *domain.GroupMembership) error {
	args := m.Called(ctx, newOwner, formerOwner)
	return args.Error(0)
}

func (m *MockGroupRepository) CreateBlock(ctx context.Context, block *domain.BlockRecord) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockGroupRepository) GetBlock(ctx context.Context, groupID, userID uuid.UUID) (*domain.BlockRecord, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockRecord), args.Error(1)
}

func (m *MockGroupRepository) DeleteBlock(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) ListBlockedUserIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockGroupRepository) ListSubGoals(ctx context.Context, groupID uuid.UUID) ([]*domain.SubGoal, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SubGoal), args.Error(1)
}

func (m *MockGroupRepository) UpdateSubGoal(ctx context.Context, subGoal *domain.SubGoal) error {
	args := m.Called(ctx, subGoal)
	return args.Error(0)
}

func (m *MockGroupRepository) CreateAuditAction(ctx context.Context, action *domain.AuditAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}
