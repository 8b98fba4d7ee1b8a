package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fundcircle/ledger-engine/internal/config"
	"github.com/fundcircle/ledger-engine/internal/domain"
	"github.com/fundcircle/ledger-engine/internal/goal"
	"github.com/fundcircle/ledger-engine/internal/ledger"
	"github.com/fundcircle/ledger-engine/internal/repository"
	"github.com/fundcircle/ledger-engine/internal/schedule"
	"github.com/fundcircle/ledger-engine/pkg/currency"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"

	"github.com/fundcircle/ledger-engine/internal/authz"
)

// FundraisingService orchestrates the ledger, scheduler, aggregator and
// authorization engines over persisted snapshots. The engines themselves are
// pure; this layer fetches state, applies a transition and writes it back.
type FundraisingService struct {
	PledgeRepo     repository.PledgeRepository
	CommitmentRepo repository.CommitmentRepository
	GroupRepo      repository.GroupRepository
	Normalizer     *currency.Normalizer
	redis          *redis.Client
	config         *config.Config
	now            func() time.Time
}

func NewFundraisingService(
	pledgeRepo repository.PledgeRepository,
	commitmentRepo repository.CommitmentRepository,
	groupRepo repository.GroupRepository,
	normalizer *currency.Normalizer,
	redisClient *redis.Client,
	cfg *config.Config,
) *FundraisingService {
	return &FundraisingService{
		PledgeRepo:     pledgeRepo,
		CommitmentRepo: commitmentRepo,
		GroupRepo:      groupRepo,
		Normalizer:     normalizer,
		redis:          redisClient,
		config:         cfg,
		now:            time.Now,
	}
}

// WithClock overrides the service clock, used by tests and the scheduler.
func (s *FundraisingService) WithClock(now func() time.Time) *FundraisingService {
	s.now = now
	return s
}

// CreatePledge validates and stores a new pledge in pending state.
func (s *FundraisingService) CreatePledge(ctx context.Context, request *domain.CreatePledgeRequest) (*domain.Pledge, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.Amount.String())
	}

	now := s.now()
	pledge := &domain.Pledge{
		ID:          uuid.New(),
		GroupID:     request.GroupID,
		MemberID:    request.MemberID,
		Amount:      request.Amount,
		AmountPaid:  decimal.Zero,
		Currency:    request.Currency,
		Status:      domain.PledgeStatusPending,
		IsAnonymous: request.IsAnonymous,
		DueDate:     request.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.PledgeRepo.Create(ctx, pledge); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, pledge.GroupID)
	return pledge, nil
}

// RecordFullPayment settles a pledge and records the payment event.
func (s *FundraisingService) RecordFullPayment(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	pledge, err := s.getPledge(ctx, pledgeID)
	if err != nil {
		return nil, err
	}

	paid := pledge.Outstanding()
	updated, err := ledger.RecordFullPayment(*pledge, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.persistPayment(ctx, &updated, paid); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RecordPartialPayment applies a partial contribution to a pledge.
func (s *FundraisingService) RecordPartialPayment(ctx context.Context, pledgeID uuid.UUID, amount decimal.Decimal) (*domain.Pledge, error) {
	pledge, err := s.getPledge(ctx, pledgeID)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.RecordPartialPayment(*pledge, amount, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.persistPayment(ctx, &updated, amount); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ResetPledge is the administrative correction path back to pending.
func (s *FundraisingService) ResetPledge(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	pledge, err := s.getPledge(ctx, pledgeID)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.ResetToPending(*pledge, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.PledgeRepo.Update(ctx, &updated); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, updated.GroupID)
	return &updated, nil
}

// CancelPledge removes a pledge. Pledges with recorded payments are rejected;
// an admin must reset them first.
func (s *FundraisingService) CancelPledge(ctx context.Context, pledgeID uuid.UUID) error {
	pledge, err := s.getPledge(ctx, pledgeID)
	if err != nil {
		return err
	}

	if err := ledger.Cancel(*pledge); err != nil {
		return err
	}

	if err := s.PledgeRepo.Delete(ctx, pledgeID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, pledge.GroupID)
	return nil
}

// ApplyBulkAction applies one action to many pledges, persisting each success
// independently. One failure never rolls back the rest.
func (s *FundraisingService) ApplyBulkAction(ctx context.Context, request *domain.BulkPledgeActionRequest) (*domain.BulkPledgeActionResponse, error) {
	pledges, err := s.PledgeRepo.ListByIDs(ctx, request.PledgeIDs)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	byID := make(map[uuid.UUID]domain.Pledge, len(pledges))
	for _, p := range pledges {
		byID[p.ID] = *p
	}

	response := &domain.BulkPledgeActionResponse{}
	now := s.now()

	for _, id := range request.PledgeIDs {
		pledge, ok := byID[id]
		if !ok {
			response.Failed++
			response.Results = append(response.Results, domain.BulkPledgeOutcome{
				PledgeID: id,
				Error:    customError.WrapPledgeNotFound(id.String()).Error(),
			})
			continue
		}

		results := ledger.ApplyBulkAction(request.Action, []domain.Pledge{pledge}, now)
		result := results[0]

		if result.Err == nil {
			if result.Deleted {
				result.Err = s.PledgeRepo.Delete(ctx, id)
			} else {
				result.Err = s.PledgeRepo.Update(ctx, result.Pledge)
			}
		}

		outcome := domain.BulkPledgeOutcome{PledgeID: id, Success: result.Err == nil}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
			response.Failed++
		} else {
			response.Processed++
			s.invalidateSummary(ctx, pledge.GroupID)
		}
		response.Results = append(response.Results, outcome)
	}

	return response, nil
}

// CreateCommitment validates and stores a recurring commitment.
func (s *FundraisingService) CreateCommitment(ctx context.Context, request *domain.CreateCommitmentRequest) (*domain.CommitmentResponse, error) {
	now := s.now()

	commitment, err := schedule.NewCommitment(request, now)
	if err != nil {
		return nil, err
	}

	if err := s.CommitmentRepo.Create(ctx, &commitment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	next, err := schedule.NextDueDate(commitment.StartDate, commitment.Frequency, now)
	if err != nil {
		return nil, err
	}

	return &domain.CommitmentResponse{Commitment: &commitment, NextDueDate: &next}, nil
}

// GetCommitment returns a commitment and its next due date.
func (s *FundraisingService) GetCommitment(ctx context.Context, commitmentID uuid.UUID) (*domain.CommitmentResponse, error) {
	commitment, err := s.CommitmentRepo.GetByID(ctx, commitmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeCommitmentNotFound,
				fmt.Sprintf("Commitment with ID %s not found", commitmentID),
				customError.ErrCommitmentNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	response := &domain.CommitmentResponse{Commitment: commitment}
	if commitment.IsActive {
		next, err := schedule.NextDueDate(commitment.StartDate, commitment.Frequency, s.now())
		if err != nil {
			return nil, err
		}
		response.NextDueDate = &next
	}

	return response, nil
}

// CancelCommitment permanently deactivates a commitment.
func (s *FundraisingService) CancelCommitment(ctx context.Context, commitmentID uuid.UUID) (*domain.RecurringCommitment, error) {
	commitment, err := s.CommitmentRepo.GetByID(ctx, commitmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeCommitmentNotFound,
				fmt.Sprintf("Commitment with ID %s not found", commitmentID),
				customError.ErrCommitmentNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	updated, err := schedule.Cancel(*commitment, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.CommitmentRepo.Update(ctx, &updated); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &updated, nil
}

// MaterializeDueCommitments turns every commitment with an occurrence on the
// given day into a pending pledge. Returns the number of pledges created.
func (s *FundraisingService) MaterializeDueCommitments(ctx context.Context, day time.Time) (int, error) {
	commitments, err := s.CommitmentRepo.ListActive(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	created := 0
	for _, c := range commitments {
		if !schedule.DueOn(*c, day) {
			continue
		}

		dueDate := day
		pledge := &domain.Pledge{
			ID:         uuid.New(),
			GroupID:    c.GroupID,
			MemberID:   c.MemberID,
			Amount:     c.AmountPerPeriod,
			AmountPaid: decimal.Zero,
			Currency:   c.Currency,
			Status:     domain.PledgeStatusPending,
			DueDate:    &dueDate,
			CreatedAt:  s.now(),
			UpdatedAt:  s.now(),
		}

		if err := s.PledgeRepo.Create(ctx, pledge); err != nil {
			return created, customError.WrapDatabaseError(err)
		}

		created++
		s.invalidateSummary(ctx, c.GroupID)
	}

	return created, nil
}

// GroupSummary folds a group's pledges and sub-goals into progress, a
// leaderboard, a projection and milestone counts. Results are cached in Redis
// and invalidated on every payment mutation.
func (s *FundraisingService) GroupSummary(ctx context.Context, groupID uuid.UUID) (*domain.GroupSummaryResponse, error) {
	cacheKey := summaryCacheKey(groupID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary domain.GroupSummaryResponse
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	group, err := s.GroupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeGroupNotFound,
				fmt.Sprintf("Group with ID %s not found", groupID),
				customError.ErrGroupNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	pledges, err := s.PledgeRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	subGoals, err := s.GroupRepo.ListSubGoals(ctx, groupID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	events, err := s.PledgeRepo.ListPaymentEventsByGroup(ctx, groupID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	opts := goal.AggregateOptions{IncludeBlocked: s.config.Business.IncludeBlocked}
	if !opts.IncludeBlocked {
		blockedIDs, err := s.GroupRepo.ListBlockedUserIDs(ctx, groupID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		opts.BlockedMembers = make(map[uuid.UUID]bool, len(blockedIDs))
		for _, id := range blockedIDs {
			opts.BlockedMembers[id] = true
		}
	}

	normalized := s.normalizePledges(pledges, group.Currency)
	history := s.normalizeEvents(events, group.Currency)

	now := s.now()
	current := goal.TotalPaid(normalized, opts)

	leaderboard := goal.Leaderboard(normalized, opts)
	if len(leaderboard) > s.config.Business.LeaderboardSize {
		leaderboard = leaderboard[:s.config.Business.LeaderboardSize]
	}

	summary := &domain.GroupSummaryResponse{
		GroupID:       groupID,
		GoalAmount:    group.GoalAmount,
		CurrentAmount: current,
		Progress:      goal.Progress(current, group.GoalAmount),
		Currency:      group.Currency,
		Leaderboard:   leaderboard,
		SubGoals:      goal.SubGoalsSummary(derefSubGoals(subGoals)),
		Projection:    goal.Project(group.GoalAmount, current, history, now),
		GeneratedAt:   now,
	}

	if s.redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.redis.Set(ctx, cacheKey, payload, s.config.GetSummaryCacheTTL())
		}
	}

	return summary, nil
}

// RecordSubGoalContribution raises a milestone's raised amount, deriving
// completion from the totals.
func (s *FundraisingService) RecordSubGoalContribution(ctx context.Context, groupID, subGoalID uuid.UUID, amount decimal.Decimal) (*domain.SubGoal, error) {
	if !amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(amount.String())
	}

	subGoals, err := s.GroupRepo.ListSubGoals(ctx, groupID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for _, sg := range subGoals {
		if sg.ID != subGoalID {
			continue
		}

		updated := goal.ApplyContribution(*sg, amount)
		if err := s.GroupRepo.UpdateSubGoal(ctx, &updated); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		s.invalidateSummary(ctx, groupID)
		return &updated, nil
	}

	return nil, customError.NewBusinessError(
		customError.ErrCodeGroupNotFound,
		fmt.Sprintf("Sub-goal with ID %s not found in group %s", subGoalID, groupID),
		customError.ErrGroupNotFound,
	)
}

func (s *FundraisingService) getPledge(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	pledge, err := s.PledgeRepo.GetByID(ctx, pledgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPledgeNotFound(pledgeID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return pledge, nil
}

// persistPayment writes the updated pledge, appends the payment event and
// bumps the member's matching commitment totals.
func (s *FundraisingService) persistPayment(ctx context.Context, pledge *domain.Pledge, amount decimal.Decimal) error {
	if err := s.PledgeRepo.Update(ctx, pledge); err != nil {
		return customError.WrapDatabaseError(err)
	}

	event := &domain.PaymentEvent{
		ID:        uuid.New(),
		PledgeID:  pledge.ID,
		GroupID:   pledge.GroupID,
		MemberID:  pledge.MemberID,
		Amount:    amount,
		Currency:  pledge.Currency,
		CreatedAt: s.now(),
	}
	if err := s.PledgeRepo.CreatePaymentEvent(ctx, event); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.creditCommitments(ctx, pledge, amount)
	s.invalidateSummary(ctx, pledge.GroupID)
	return nil
}

// creditCommitments updates cumulative totals on the member's active
// commitment when a materialized pledge is paid. Best effort; a failure here
// never fails the payment.
func (s *FundraisingService) creditCommitments(ctx context.Context, pledge *domain.Pledge, amount decimal.Decimal) {
	if pledge.DueDate == nil {
		return
	}

	commitments, err := s.CommitmentRepo.ListByGroup(ctx, pledge.GroupID)
	if err != nil {
		return
	}

	for _, c := range commitments {
		if c.MemberID != pledge.MemberID || !c.IsActive {
			continue
		}
		if !c.AmountPerPeriod.Equal(pledge.Amount) {
			continue
		}

		updated, err := schedule.RecordPayment(*c, amount, s.now())
		if err != nil {
			return
		}
		_ = s.CommitmentRepo.Update(ctx, &updated)
		return
	}
}

// normalizePledges converts paid and pledged amounts into the group currency
// so multi-currency pledge sets compare and rank correctly.
func (s *FundraisingService) normalizePledges(pledges []*domain.Pledge, groupCurrency string) []domain.Pledge {
	normalized := make([]domain.Pledge, 0, len(pledges))
	for _, p := range pledges {
		converted := *p
		converted.Amount = s.Normalizer.Convert(p.Amount, p.Currency, groupCurrency)
		converted.AmountPaid = s.Normalizer.Convert(p.AmountPaid, p.Currency, groupCurrency)
		converted.Currency = groupCurrency
		normalized = append(normalized, converted)
	}
	return normalized
}

func (s *FundraisingService) normalizeEvents(events []*domain.PaymentEvent, groupCurrency string) []domain.PaymentEvent {
	normalized := make([]domain.PaymentEvent, 0, len(events))
	for _, e := range events {
		converted := *e
		converted.Amount = s.Normalizer.Convert(e.Amount, e.Currency, groupCurrency)
		converted.Currency = groupCurrency
		normalized = append(normalized, converted)
	}
	return normalized
}

func (s *FundraisingService) invalidateSummary(ctx context.Context, groupID uuid.UUID) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, summaryCacheKey(groupID))
}

func summaryCacheKey(groupID uuid.UUID) string {
	return fmt.Sprintf("group_summary:%s", groupID)
}

func derefSubGoals(subGoals []*domain.SubGoal) []domain.SubGoal {
	out := make([]domain.SubGoal, 0, len(subGoals))
	for _, sg := range subGoals {
		out = append(out, *sg)
	}
	return out
}

// --- Membership administration ---

// Promote raises a member to admin on behalf of the acting user.
func (s *FundraisingService) Promote(ctx context.Context, groupID, actorID, targetID uuid.UUID) (*domain.GroupMembership, error) {
	actor, target, err := s.getMembershipPair(ctx, groupID, actorID, targetID)
	if err != nil {
		return nil, err
	}

	updated, err := authz.Promote(*actor, *target)
	if err != nil {
		return nil, err
	}

	if err := s.GroupRepo.UpdateMembership(ctx, &updated); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, actorID, targetID, "promote", "")
	return &updated, nil
}

// Demote returns an admin to plain member on behalf of the owner.
func (s *FundraisingService) Demote(ctx context.Context, groupID, actorID, targetID uuid.UUID) (*domain.GroupMembership, error) {
	actor, target, err := s.getMembershipPair(ctx, groupID, actorID, targetID)
	if err != nil {
		return nil, err
	}

	updated, err := authz.Demote(*actor, *target)
	if err != nil {
		return nil, err
	}

	if err := s.GroupRepo.UpdateMembership(ctx, &updated); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, actorID, targetID, "demote", "")
	return &updated, nil
}

// RemoveMember ejects a member from the group.
func (s *FundraisingService) RemoveMember(ctx context.Context, groupID, actorID, targetID uuid.UUID) error {
	actor, target, err := s.getMembershipPair(ctx, groupID, actorID, targetID)
	if err != nil {
		return err
	}

	if err := authz.Remove(*actor, *target); err != nil {
		return err
	}

	if err := s.GroupRepo.DeleteMembership(ctx, groupID, targetID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, actorID, targetID, "remove", "")
	return nil
}

// BlockMember removes a member and records a durable block against rejoining.
func (s *FundraisingService) BlockMember(ctx context.Context, groupID, actorID, targetID uuid.UUID, reason string) (*domain.BlockRecord, error) {
	actor, target, err := s.getMembershipPair(ctx, groupID, actorID, targetID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.GroupRepo.GetBlock(ctx, groupID, targetID); err == nil && existing != nil {
		return nil, customError.NewBusinessError(
			customError.ErrCodeAlreadyBlocked,
			fmt.Sprintf("User %s is already blocked", targetID),
			customError.ErrAlreadyBlocked,
		)
	}

	block, err := authz.Block(*actor, *target, reason, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.GroupRepo.CreateBlock(ctx, &block); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if err := s.GroupRepo.DeleteMembership(ctx, groupID, targetID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, actorID, targetID, "block", reason)
	return &block, nil
}

// UnblockUser clears a block record. Membership is not restored.
func (s *FundraisingService) UnblockUser(ctx context.Context, groupID, actorID, targetID uuid.UUID) error {
	actor, err := s.getMembership(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	block, err := s.GroupRepo.GetBlock(ctx, groupID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.NewBusinessError(
				customError.ErrCodeBlockNotFound,
				fmt.Sprintf("No block record for user %s", targetID),
				customError.ErrBlockNotFound,
			)
		}
		return customError.WrapDatabaseError(err)
	}

	if err := authz.Unblock(*actor, *block); err != nil {
		return err
	}

	if err := s.GroupRepo.DeleteBlock(ctx, groupID, targetID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, actorID, targetID, "unblock", "")
	return nil
}

// TransferOwnership atomically swaps the owner role to the target and demotes
// the previous owner to admin.
func (s *FundraisingService) TransferOwnership(ctx context.Context, groupID uuid.UUID, request *domain.TransferOwnershipRequest) (*domain.GroupMembership, error) {
	actor, target, err := s.getMembershipPair(ctx, groupID, request.ActorID, request.TargetID)
	if err != nil {
		return nil, err
	}

	newOwner, formerOwner, err := authz.TransferOwnership(*actor, *target, request.Confirmation)
	if err != nil {
		return nil, err
	}

	if err := s.GroupRepo.TransferOwnership(ctx, &newOwner, &formerOwner); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit(ctx, groupID, request.ActorID, request.TargetID, "transfer_ownership", "")
	return &newOwner, nil
}

func (s *FundraisingService) getMembership(ctx context.Context, groupID, userID uuid.UUID) (*domain.GroupMembership, error) {
	membership, err := s.GroupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeMembershipNotFound,
				fmt.Sprintf("User %s is not a member of group %s", userID, groupID),
				customError.ErrMembershipNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return membership, nil
}

func (s *FundraisingService) getMembershipPair(ctx context.Context, groupID, actorID, targetID uuid.UUID) (*domain.GroupMembership, *domain.GroupMembership, error) {
	actor, err := s.getMembership(ctx, groupID, actorID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.getMembership(ctx, groupID, targetID)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

// audit records the admin action; failures are swallowed so logging never
// blocks the action itself.
func (s *FundraisingService) audit(ctx context.Context, groupID, actorID, targetID uuid.UUID, action, detail string) {
	_ = s.GroupRepo.CreateAuditAction(ctx, &domain.AuditAction{
		ID:        uuid.New(),
		GroupID:   groupID,
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		Detail:    detail,
		CreatedAt: s.now(),
	})
}
