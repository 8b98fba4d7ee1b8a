package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fundcircle/ledger-engine/internal/config"
	"github.com/fundcircle/ledger-engine/internal/domain"
	"github.com/fundcircle/ledger-engine/internal/handler"
	"github.com/fundcircle/ledger-engine/internal/service"
	"github.com/fundcircle/ledger-engine/pkg/currency"
	"github.com/fundcircle/ledger-engine/tests/mocks"
)

type testEnv struct {
	pledgeRepo     *mocks.MockPledgeRepository
	commitmentRepo *mocks.MockCommitmentRepository
	groupRepo      *mocks.MockGroupRepository
	router         *mux.Router
}

func newTestEnv() *testEnv {
	env := &testEnv{
		pledgeRepo:     &mocks.MockPledgeRepository{},
		commitmentRepo: &mocks.MockCommitmentRepository{},
		groupRepo:      &mocks.MockGroupRepository{},
	}

	cfg := &config.Config{
		Business: config.BusinessConfig{
			BaseCurrency:    "USD",
			SummaryCacheTTL: "5m",
			LeaderboardSize: 10,
			IncludeBlocked:  true,
		},
	}

	svc := service.NewFundraisingService(
		env.pledgeRepo,
		env.commitmentRepo,
		env.groupRepo,
		currency.NewNormalizer(currency.DefaultTable()),
		nil,
		cfg,
	)
	fundraisingHandler := handler.NewFundraisingHandler(svc)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/pledges", fundraisingHandler.CreatePledge).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}/pay", fundraisingHandler.RecordFullPayment).Methods("POST")
	api.HandleFunc("/pledges/{pledgeId}/payments", fundraisingHandler.RecordPartialPayment).Methods("POST")
	api.HandleFunc("/groups/{groupId}/members/{userId}/promote", fundraisingHandler.Promote).Methods("POST")
	env.router = router

	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if str, ok := body.(string); ok {
		buf.WriteString(str)
	} else if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestFundraisingHandler_CreatePledge(t *testing.T) {
	groupID := uuid.New()
	memberID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*testEnv)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful pledge creation",
			requestBody: domain.CreatePledgeRequest{
				GroupID:  groupID,
				MemberID: memberID,
				Amount:   decimal.NewFromInt(500),
				Currency: "USD",
			},
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Pledge) bool {
					return p.GroupID == groupID && p.Status == domain.PledgeStatusPending
				})).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"pending"`,
		},
		{
			name:           "invalid JSON payload",
			requestBody:    "not json",
			setupMocks:     func(env *testEnv) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request body",
		},
		{
			name: "validation error - missing currency",
			requestBody: domain.CreatePledgeRequest{
				GroupID:  groupID,
				MemberID: memberID,
				Amount:   decimal.NewFromInt(500),
			},
			setupMocks:     func(env *testEnv) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name: "negative amount rejected by the ledger",
			requestBody: domain.CreatePledgeRequest{
				GroupID:  groupID,
				MemberID: memberID,
				Amount:   decimal.NewFromInt(-100),
				Currency: "USD",
			},
			setupMocks:     func(env *testEnv) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid amount",
		},
		{
			name: "database error surfaces as 500",
			requestBody: domain.CreatePledgeRequest{
				GroupID:  groupID,
				MemberID: memberID,
				Amount:   decimal.NewFromInt(500),
				Currency: "USD",
			},
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.setupMocks(env)

			w := env.do(t, http.MethodPost, "/api/v1/pledges", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			env.pledgeRepo.AssertExpectations(t)
		})
	}
}

func TestFundraisingHandler_RecordPartialPayment(t *testing.T) {
	pledgeID := uuid.New()

	freshPledge := func(amount, paid int64) *domain.Pledge {
		p := &domain.Pledge{
			ID:         pledgeID,
			GroupID:    uuid.New(),
			MemberID:   uuid.New(),
			Amount:     decimal.NewFromInt(amount),
			AmountPaid: decimal.NewFromInt(paid),
			Currency:   "USD",
			CreatedAt:  time.Now(),
		}
		p.Reclassify()
		return p
	}

	tests := []struct {
		name           string
		amount         decimal.Decimal
		setupMocks     func(*testEnv)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "payment recorded",
			amount: decimal.NewFromInt(200),
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("GetByID", mock.Anything, pledgeID).Return(freshPledge(500, 0), nil)
				env.pledgeRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
				env.pledgeRepo.On("CreatePaymentEvent", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"partial"`,
		},
		{
			name:   "pledge not found maps to 404",
			amount: decimal.NewFromInt(200),
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("GetByID", mock.Anything, pledgeID).Return(nil, sql.ErrNoRows)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "already paid maps to 409",
			amount: decimal.NewFromInt(200),
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("GetByID", mock.Anything, pledgeID).Return(freshPledge(500, 500), nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "overpayment maps to 400",
			amount: decimal.NewFromInt(900),
			setupMocks: func(env *testEnv) {
				env.pledgeRepo.On("GetByID", mock.Anything, pledgeID).Return(freshPledge(500, 0), nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.setupMocks(env)

			w := env.do(t, http.MethodPost, "/api/v1/pledges/"+pledgeID.String()+"/payments",
				domain.PartialPaymentRequest{Amount: tt.amount})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			env.pledgeRepo.AssertExpectations(t)
		})
	}
}

func TestFundraisingHandler_Promote(t *testing.T) {
	groupID := uuid.New()
	actorID := uuid.New()
	targetID := uuid.New()

	t.Run("member actor gets 403", func(t *testing.T) {
		env := newTestEnv()
		env.groupRepo.On("GetMembership", mock.Anything, groupID, actorID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: actorID, Role: domain.RoleMember,
		}, nil)
		env.groupRepo.On("GetMembership", mock.Anything, groupID, targetID).Return(&domain.GroupMembership{
			GroupID: groupID, UserID: targetID, Role: domain.RoleMember,
		}, nil)

		w := env.do(t, http.MethodPost,
			"/api/v1/groups/"+groupID.String()+"/members/"+targetID.String()+"/promote",
			domain.MembershipActionRequest{ActorID: actorID})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing actor id fails validation", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(t, http.MethodPost,
			"/api/v1/groups/"+groupID.String()+"/members/"+targetID.String()+"/promote",
			domain.MembershipActionRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Validation failed")
	})
}
