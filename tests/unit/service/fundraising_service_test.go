package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fundcircle/ledger-engine/internal/config"
	"github.com/fundcircle/ledger-engine/internal/domain"
	fundraisingService "github.com/fundcircle/ledger-engine/internal/service"
	"github.com/fundcircle/ledger-engine/pkg/currency"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"
	"github.com/fundcircle/ledger-engine/tests/mocks"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newService(pledgeRepo *mocks.MockPledgeRepository, commitmentRepo *mocks.MockCommitmentRepository, groupRepo *mocks.MockGroupRepository) *fundraisingService.FundraisingService {
	cfg := &config.Config{
		Business: config.BusinessConfig{
			BaseCurrency:    "USD",
			SummaryCacheTTL: "5m",
			LeaderboardSize: 10,
			IncludeBlocked:  true,
		},
	}

	svc := fundraisingService.NewFundraisingService(
		pledgeRepo,
		commitmentRepo,
		groupRepo,
		currency.NewNormalizer(currency.DefaultTable()),
		nil,
		cfg,
	)
	return svc.WithClock(func() time.Time { return fixedNow })
}

func storedPledge(amount, paid int64) *domain.Pledge {
	p := &domain.Pledge{
		ID:         uuid.New(),
		GroupID:    uuid.New(),
		MemberID:   uuid.New(),
		Amount:     decimal.NewFromInt(amount),
		AmountPaid: decimal.NewFromInt(paid),
		Currency:   "USD",
		CreatedAt:  fixedNow.AddDate(0, 0, -7),
	}
	p.Reclassify()
	return p
}

func TestRecordPartialPayment(t *testing.T) {
	tests := []struct {
		name          string
		amount        decimal.Decimal
		setupMocks    func(*mocks.MockPledgeRepository, *mocks.MockCommitmentRepository, *domain.Pledge)
		expectedError bool
		errorContains string
		validate      func(*testing.T, *domain.Pledge)
	}{
		{
			name:   "Success - partial payment recorded",
			amount: decimal.NewFromInt(200),
			setupMocks: func(pledgeRepo *mocks.MockPledgeRepository, commitmentRepo *mocks.MockCommitmentRepository, pledge *domain.Pledge) {
				pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)
				pledgeRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
					return p.AmountPaid.Equal(decimal.NewFromInt(200)) && p.Status == domain.PledgeStatusPartial
				})).Return(nil)
				pledgeRepo.On("CreatePaymentEvent", mock.Anything, mock.MatchedBy(func(e *domain.PaymentEvent) bool {
					return e.PledgeID == pledge.ID && e.Amount.Equal(decimal.NewFromInt(200))
				})).Return(nil)
			},
			validate: func(t *testing.T, p *domain.Pledge) {
				assert.True(t, p.AmountPaid.Equal(decimal.NewFromInt(200)))
				assert.Equal(t, domain.PledgeStatusPartial, p.Status)
			},
		},
		{
			name:   "Failure - pledge not found",
			amount: decimal.NewFromInt(200),
			setupMocks: func(pledgeRepo *mocks.MockPledgeRepository, commitmentRepo *mocks.MockCommitmentRepository, pledge *domain.Pledge) {
				pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "not found",
		},
		{
			name:   "Failure - overpayment rejected before persistence",
			amount: decimal.NewFromInt(600),
			setupMocks: func(pledgeRepo *mocks.MockPledgeRepository, commitmentRepo *mocks.MockCommitmentRepository, pledge *domain.Pledge) {
				pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)
			},
			expectedError: true,
			errorContains: "exceeds",
		},
		{
			name:   "Failure - database error on update",
			amount: decimal.NewFromInt(100),
			setupMocks: func(pledgeRepo *mocks.MockPledgeRepository, commitmentRepo *mocks.MockCommitmentRepository, pledge *domain.Pledge) {
				pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)
				pledgeRepo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
			},
			expectedError: true,
			errorContains: "database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pledgeRepo := &mocks.MockPledgeRepository{}
			commitmentRepo := &mocks.MockCommitmentRepository{}
			groupRepo := &mocks.MockGroupRepository{}
			svc := newService(pledgeRepo, commitmentRepo, groupRepo)

			pledge := storedPledge(500, 0)
			tt.setupMocks(pledgeRepo, commitmentRepo, pledge)

			updated, err := svc.RecordPartialPayment(context.Background(), pledge.ID, tt.amount)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				tt.validate(t, updated)
			}

			pledgeRepo.AssertExpectations(t)
		})
	}
}

func TestRecordFullPayment_CreditsCommitment(t *testing.T) {
	pledgeRepo := &mocks.MockPledgeRepository{}
	commitmentRepo := &mocks.MockCommitmentRepository{}
	groupRepo := &mocks.MockGroupRepository{}
	svc := newService(pledgeRepo, commitmentRepo, groupRepo)

	pledge := storedPledge(50, 0)
	dueDate := fixedNow.AddDate(0, 0, -1)
	pledge.DueDate = &dueDate

	commitment := &domain.RecurringCommitment{
		ID:              uuid.New(),
		GroupID:         pledge.GroupID,
		MemberID:        pledge.MemberID,
		AmountPerPeriod: decimal.NewFromInt(50),
		Currency:        "USD",
		Frequency:       domain.FrequencyMonthly,
		StartDate:       fixedNow.AddDate(0, -2, 0),
		IsActive:        true,
		TotalPaid:       decimal.Zero,
	}

	pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)
	pledgeRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	pledgeRepo.On("CreatePaymentEvent", mock.Anything, mock.Anything).Return(nil)
	commitmentRepo.On("ListByGroup", mock.Anything, pledge.GroupID).Return([]*domain.RecurringCommitment{commitment}, nil)
	commitmentRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.RecurringCommitment) bool {
		return c.PaymentCount == 1 && c.TotalPaid.Equal(decimal.NewFromInt(50))
	})).Return(nil)

	updated, err := svc.RecordFullPayment(context.Background(), pledge.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.PledgeStatusPaid, updated.Status)
	commitmentRepo.AssertExpectations(t)
}

func TestApplyBulkAction(t *testing.T) {
	pledgeRepo := &mocks.MockPledgeRepository{}
	commitmentRepo := &mocks.MockCommitmentRepository{}
	groupRepo := &mocks.MockGroupRepository{}
	svc := newService(pledgeRepo, commitmentRepo, groupRepo)

	pending := storedPledge(100, 0)
	alreadyPaid := storedPledge(200, 200)
	missing := uuid.New()

	request := &domain.BulkPledgeActionRequest{
		Action:    "mark_paid",
		PledgeIDs: []uuid.UUID{pending.ID, alreadyPaid.ID, missing},
	}

	pledgeRepo.On("ListByIDs", mock.Anything, request.PledgeIDs).Return([]*domain.Pledge{pending, alreadyPaid}, nil)
	pledgeRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
		return p.ID == pending.ID && p.Status == domain.PledgeStatusPaid
	})).Return(nil)

	result, err := svc.ApplyBulkAction(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[1].Success)
	assert.Contains(t, result.Results[1].Error, "already")
	assert.False(t, result.Results[2].Success)
	assert.Contains(t, result.Results[2].Error, "not found")

	pledgeRepo.AssertExpectations(t)
}

func TestCancelPledge(t *testing.T) {
	t.Run("Success - unpaid pledge deleted", func(t *testing.T) {
		pledgeRepo := &mocks.MockPledgeRepository{}
		svc := newService(pledgeRepo, &mocks.MockCommitmentRepository{}, &mocks.MockGroupRepository{})

		pledge := storedPledge(100, 0)
		pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)
		pledgeRepo.On("Delete", mock.Anything, pledge.ID).Return(nil)

		require.NoError(t, svc.CancelPledge(context.Background(), pledge.ID))
		pledgeRepo.AssertExpectations(t)
	})

	t.Run("Failure - pledge with payments is kept", func(t *testing.T) {
		pledgeRepo := &mocks.MockPledgeRepository{}
		svc := newService(pledgeRepo, &mocks.MockCommitmentRepository{}, &mocks.MockGroupRepository{})

		pledge := storedPledge(100, 40)
		pledgeRepo.On("GetByID", mock.Anything, pledge.ID).Return(pledge, nil)

		err := svc.CancelPledge(context.Background(), pledge.ID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, customError.ErrPledgeHasPayments))
		pledgeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestMaterializeDueCommitments(t *testing.T) {
	pledgeRepo := &mocks.MockPledgeRepository{}
	commitmentRepo := &mocks.MockCommitmentRepository{}
	svc := newService(pledgeRepo, commitmentRepo, &mocks.MockGroupRepository{})

	memberID := uuid.New()
	groupID := uuid.New()

	dueToday := &domain.RecurringCommitment{
		ID:              uuid.New(),
		GroupID:         groupID,
		MemberID:        memberID,
		AmountPerPeriod: decimal.NewFromInt(25),
		Currency:        "USD",
		Frequency:       domain.FrequencyMonthly,
		StartDate:       time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
		TotalPaid:       decimal.Zero,
	}
	notDueToday := &domain.RecurringCommitment{
		ID:              uuid.New(),
		GroupID:         groupID,
		MemberID:        memberID,
		AmountPerPeriod: decimal.NewFromInt(10),
		Currency:        "USD",
		Frequency:       domain.FrequencyMonthly,
		StartDate:       time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
		TotalPaid:       decimal.Zero,
	}

	commitmentRepo.On("ListActive", mock.Anything).Return([]*domain.RecurringCommitment{dueToday, notDueToday}, nil)
	pledgeRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
		return p.MemberID == memberID && p.Amount.Equal(decimal.NewFromInt(25)) && p.Status == domain.PledgeStatusPending
	})).Return(nil)

	// fixedNow is March 15, an occurrence day for the Jan 15 monthly commitment.
	created, err := svc.MaterializeDueCommitments(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	pledgeRepo.AssertExpectations(t)
}

func TestGroupSummary(t *testing.T) {
	pledgeRepo := &mocks.MockPledgeRepository{}
	groupRepo := &mocks.MockGroupRepository{}
	svc := newService(pledgeRepo, &mocks.MockCommitmentRepository{}, groupRepo)

	groupID := uuid.New()
	group := &domain.Group{
		ID:         groupID,
		Name:       "Community Garden",
		GoalAmount: decimal.NewFromInt(1000),
		Currency:   "USD",
	}

	usd := storedPledge(500, 300)
	usd.GroupID = groupID

	// 92 EUR paid converts to 100 USD through the base pivot.
	eur := storedPledge(460, 92)
	eur.GroupID = groupID
	eur.Currency = "EUR"

	groupRepo.On("GetByID", mock.Anything, groupID).Return(group, nil)
	pledgeRepo.On("ListByGroup", mock.Anything, groupID).Return([]*domain.Pledge{usd, eur}, nil)
	groupRepo.On("ListSubGoals", mock.Anything, groupID).Return([]*domain.SubGoal{
		{GroupID: groupID, Title: "Seeds", TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.NewFromInt(200), IsCompleted: true},
		{GroupID: groupID, Title: "Tools", TargetAmount: decimal.NewFromInt(300), CurrentAmount: decimal.NewFromInt(50)},
	}, nil)
	pledgeRepo.On("ListPaymentEventsByGroup", mock.Anything, groupID).Return([]*domain.PaymentEvent{
		{GroupID: groupID, MemberID: usd.MemberID, Amount: decimal.NewFromInt(300), Currency: "USD", CreatedAt: fixedNow.AddDate(0, 0, -4)},
		{GroupID: groupID, MemberID: eur.MemberID, Amount: decimal.NewFromInt(92), Currency: "EUR", CreatedAt: fixedNow.AddDate(0, 0, -2)},
	}, nil)

	summary, err := svc.GroupSummary(context.Background(), groupID)

	require.NoError(t, err)
	assert.True(t, summary.CurrentAmount.Equal(decimal.NewFromInt(400)), "expected 400, got %s", summary.CurrentAmount)
	assert.True(t, summary.Progress.Equal(decimal.NewFromFloat(0.4)))
	require.Len(t, summary.Leaderboard, 2)
	assert.True(t, summary.Leaderboard[0].TotalPaid.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, summary.SubGoals.Completed)
	assert.Equal(t, 1, summary.SubGoals.InProgress)
	assert.Equal(t, domain.ProjectionEstimated, summary.Projection.State)
}

func TestGroupSummary_GroupNotFound(t *testing.T) {
	groupRepo := &mocks.MockGroupRepository{}
	svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)

	groupID := uuid.New()
	groupRepo.On("GetByID", mock.Anything, groupID).Return(nil, sql.ErrNoRows)

	_, err := svc.GroupSummary(context.Background(), groupID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrGroupNotFound))
}

func TestPromote(t *testing.T) {
	groupID := uuid.New()
	actorID := uuid.New()
	targetID := uuid.New()

	t.Run("Success - admin promotes member", func(t *testing.T) {
		groupRepo := &mocks.MockGroupRepository{}
		svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)

		groupRepo.On("GetMembership", mock.Anything, groupID, actorID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: actorID, Role: domain.RoleAdmin,
		}, nil)
		groupRepo.On("GetMembership", mock.Anything, groupID, targetID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: targetID, Role: domain.RoleMember,
		}, nil)
		groupRepo.On("UpdateMembership", mock.Anything, mock.MatchedBy(func(m *domain.GroupMembership) bool {
			return m.UserID == targetID && m.Role == domain.RoleAdmin
		})).Return(nil)
		groupRepo.On("CreateAuditAction", mock.Anything, mock.MatchedBy(func(a *domain.AuditAction) bool {
			return a.Action == "promote" && a.ActorID == actorID && a.TargetID == targetID
		})).Return(nil)

		updated, err := svc.Promote(context.Background(), groupID, actorID, targetID)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
		groupRepo.AssertExpectations(t)
	})

	t.Run("Failure - member cannot promote", func(t *testing.T) {
		groupRepo := &mocks.MockGroupRepository{}
		svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)

		groupRepo.On("GetMembership", mock.Anything, groupID, actorID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: actorID, Role: domain.RoleMember,
		}, nil)
		groupRepo.On("GetMembership", mock.Anything, groupID, targetID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: targetID, Role: domain.RoleMember,
		}, nil)

		_, err := svc.Promote(context.Background(), groupID, actorID, targetID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, customError.ErrNotAuthorized))
		groupRepo.AssertNotCalled(t, "UpdateMembership", mock.Anything, mock.Anything)
	})
}

func TestTransferOwnership(t *testing.T) {
	groupID := uuid.New()
	ownerID := uuid.New()
	targetID := uuid.New()

	setupMemberships := func(groupRepo *mocks.MockGroupRepository) {
		groupRepo.On("GetMembership", mock.Anything, groupID, ownerID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: ownerID, Role: domain.RoleOwner,
		}, nil)
		groupRepo.On("GetMembership", mock.Anything, groupID, targetID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: targetID, Role: domain.RoleMember,
		}, nil)
	}

	t.Run("Success - roles swapped in one transaction", func(t *testing.T) {
		groupRepo := &mocks.MockGroupRepository{}
		svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)
		setupMemberships(groupRepo)

		groupRepo.On("TransferOwnership", mock.Anything,
			mock.MatchedBy(func(m *domain.GroupMembership) bool {
				return m.UserID == targetID && m.Role == domain.RoleOwner
			}),
			mock.MatchedBy(func(m *domain.GroupMembership) bool {
				return m.UserID == ownerID && m.Role == domain.RoleAdmin
			}),
		).Return(nil)
		groupRepo.On("CreateAuditAction", mock.Anything, mock.Anything).Return(nil)

		newOwner, err := svc.TransferOwnership(context.Background(), groupID, &domain.TransferOwnershipRequest{
			ActorID:      ownerID,
			TargetID:     targetID,
			Confirmation: "TRANSFER OWNERSHIP",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, newOwner.Role)
		groupRepo.AssertExpectations(t)
	})

	t.Run("Failure - wrong confirmation phrase", func(t *testing.T) {
		groupRepo := &mocks.MockGroupRepository{}
		svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)
		setupMemberships(groupRepo)

		_, err := svc.TransferOwnership(context.Background(), groupID, &domain.TransferOwnershipRequest{
			ActorID:      ownerID,
			TargetID:     targetID,
			Confirmation: "transfer",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, customError.ErrConfirmationNeeded))
		groupRepo.AssertNotCalled(t, "TransferOwnership", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBlockMember(t *testing.T) {
	groupID := uuid.New()
	actorID := uuid.New()
	targetID := uuid.New()

	groupRepo := &mocks.MockGroupRepository{}
	svc := newService(&mocks.MockPledgeRepository{}, &mocks.MockCommitmentRepository{}, groupRepo)

	groupRepo.On("GetMembership", mock.Anything, groupID, actorID).Return(&domain.GroupMembership{
		GroupID: groupID, UserID: actorID, Role: domain.RoleOwner,
	}, nil)
	groupRepo.On("GetMembership", mock.Anything, groupID, targetID).Return(&domain.GroupMembership{
		GroupID: groupID, UserID: targetID, Role: domain.RoleMember,
	}, nil)
	groupRepo.On("GetBlock", mock.Anything, groupID, targetID).Return(nil, sql.ErrNoRows)
	groupRepo.On("CreateBlock", mock.Anything, mock.MatchedBy(func(b *domain.BlockRecord) bool {
		return b.UserID == targetID && b.Reason == "abusive messages"
	})).Return(nil)
	groupRepo.On("DeleteMembership", mock.Anything, groupID, targetID).Return(nil)
	groupRepo.On("CreateAuditAction", mock.Anything, mock.Anything).Return(nil)

	block, err := svc.BlockMember(context.Background(), groupID, actorID, targetID, "abusive messages")

	require.NoError(t, err)
	assert.Equal(t, targetID, block.UserID)
	groupRepo.AssertExpectations(t)
}
