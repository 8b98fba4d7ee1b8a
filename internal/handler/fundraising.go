package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fundcircle/ledger-engine/internal/domain"
	"github.com/fundcircle/ledger-engine/internal/service"
	customError "github.com/fundcircle/ledger-engine/pkg/errors"
	"github.com/fundcircle/ledger-engine/pkg/response"
)

type FundraisingHandler struct {
	service   *service.FundraisingService
	validator *validator.Validate
}

func NewFundraisingHandler(service *service.FundraisingService) *FundraisingHandler {
	return &FundraisingHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreatePledge handles POST /pledges
func (h *FundraisingHandler) CreatePledge(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	pledge, err := h.service.CreatePledge(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, pledge)
}

// RecordFullPayment handles POST /pledges/{pledgeId}/pay
func (h *FundraisingHandler) RecordFullPayment(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	pledge, err := h.service.RecordFullPayment(r.Context(), pledgeID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, pledge)
}

// RecordPartialPayment handles POST /pledges/{pledgeId}/payments
func (h *FundraisingHandler) RecordPartialPayment(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	var request domain.PartialPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	pledge, err := h.service.RecordPartialPayment(r.Context(), pledgeID, request.Amount)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, pledge)
}

// ResetPledge handles POST /pledges/{pledgeId}/reset
func (h *FundraisingHandler) ResetPledge(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	pledge, err := h.service.ResetPledge(r.Context(), pledgeID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, pledge)
}

// CancelPledge handles DELETE /pledges/{pledgeId}
func (h *FundraisingHandler) CancelPledge(w http.ResponseWriter, r *http.Request) {
	pledgeID, ok := pathUUID(w, r, "pledgeId")
	if !ok {
		return
	}

	if err := h.service.CancelPledge(r.Context(), pledgeID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "cancelled"})
}

// ApplyBulkAction handles POST /pledges/bulk
func (h *FundraisingHandler) ApplyBulkAction(w http.ResponseWriter, r *http.Request) {
	var request domain.BulkPledgeActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.service.ApplyBulkAction(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateCommitment handles POST /commitments
func (h *FundraisingHandler) CreateCommitment(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCommitmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.service.CreateCommitment(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// GetCommitment handles GET /commitments/{commitmentId}
func (h *FundraisingHandler) GetCommitment(w http.ResponseWriter, r *http.Request) {
	commitmentID, ok := pathUUID(w, r, "commitmentId")
	if !ok {
		return
	}

	result, err := h.service.GetCommitment(r.Context(), commitmentID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// CancelCommitment handles DELETE /commitments/{commitmentId}
func (h *FundraisingHandler) CancelCommitment(w http.ResponseWriter, r *http.Request) {
	commitmentID, ok := pathUUID(w, r, "commitmentId")
	if !ok {
		return
	}

	commitment, err := h.service.CancelCommitment(r.Context(), commitmentID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, commitment)
}

// GroupSummary handles GET /groups/{groupId}/summary
func (h *FundraisingHandler) GroupSummary(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}

	summary, err := h.service.GroupSummary(r.Context(), groupID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

// RecordSubGoalContribution handles POST /groups/{groupId}/subgoals/{subGoalId}/contributions
func (h *FundraisingHandler) RecordSubGoalContribution(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}
	subGoalID, ok := pathUUID(w, r, "subGoalId")
	if !ok {
		return
	}

	var request struct {
		Amount decimal.Decimal `json:"amount" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	subGoal, err := h.service.RecordSubGoalContribution(r.Context(), groupID, subGoalID, request.Amount)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, subGoal)
}

// Promote handles POST /groups/{groupId}/members/{userId}/promote
func (h *FundraisingHandler) Promote(w http.ResponseWriter, r *http.Request) {
	h.membershipAction(w, r, h.service.Promote)
}

// Demote handles POST /groups/{groupId}/members/{userId}/demote
func (h *FundraisingHandler) Demote(w http.ResponseWriter, r *http.Request) {
	h.membershipAction(w, r, h.service.Demote)
}

// RemoveMember handles POST /groups/{groupId}/members/{userId}/remove
func (h *FundraisingHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, actorID, targetID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveMember(r.Context(), groupID, actorID, targetID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "removed"})
}

// BlockMember handles POST /groups/{groupId}/members/{userId}/block
func (h *FundraisingHandler) BlockMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}
	targetID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var request domain.MembershipActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	block, err := h.service.BlockMember(r.Context(), groupID, request.ActorID, targetID, request.Reason)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, block)
}

// UnblockUser handles POST /groups/{groupId}/members/{userId}/unblock
func (h *FundraisingHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	groupID, actorID, targetID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}

	if err := h.service.UnblockUser(r.Context(), groupID, actorID, targetID); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, map[string]string{"status": "unblocked"})
}

// TransferOwnership handles POST /groups/{groupId}/transfer-ownership
func (h *FundraisingHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}

	var request domain.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	newOwner, err := h.service.TransferOwnership(r.Context(), groupID, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, newOwner)
}

type membershipFunc func(ctx context.Context, groupID, actorID, targetID uuid.UUID) (*domain.GroupMembership, error)

func (h *FundraisingHandler) membershipAction(w http.ResponseWriter, r *http.Request, action membershipFunc) {
	groupID, actorID, targetID, ok := h.membershipParams(w, r)
	if !ok {
		return
	}

	membership, err := action(r.Context(), groupID, actorID, targetID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, membership)
}

func (h *FundraisingHandler) membershipParams(w http.ResponseWriter, r *http.Request) (groupID, actorID, targetID uuid.UUID, ok bool) {
	groupID, ok = pathUUID(w, r, "groupId")
	if !ok {
		return
	}
	targetID, ok = pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var request domain.MembershipActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		ok = false
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		ok = false
		return
	}

	return groupID, request.ActorID, targetID, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

// writeBusinessError maps engine error codes onto HTTP statuses.
func writeBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodePledgeNotFound,
		customError.ErrCodeCommitmentNotFound,
		customError.ErrCodeGroupNotFound,
		customError.ErrCodeMembershipNotFound,
		customError.ErrCodeBlockNotFound:
		response.Error(w, http.StatusNotFound, businessErr.Message, businessErr)
	case customError.ErrCodeNotAuthorized:
		response.Error(w, http.StatusForbidden, businessErr.Message, businessErr)
	case customError.ErrCodePledgeAlreadyPaid,
		customError.ErrCodeCommitmentInactive,
		customError.ErrCodeAlreadyBlocked:
		response.Error(w, http.StatusConflict, businessErr.Message, businessErr)
	case customError.ErrCodeDatabaseError, customError.ErrCodeCacheError:
		response.InternalServerError(w, businessErr.Message, businessErr)
	default:
		response.Error(w, http.StatusBadRequest, businessErr.Message, businessErr)
	}
}
