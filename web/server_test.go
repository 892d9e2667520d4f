package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/domain/testhelpers"
	"matchbook/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type serverFixture struct {
	identity   *testhelpers.MockIdentityService
	voting     *testhelpers.MockVotingService
	betting    *testhelpers.MockBettingService
	rounds     *testhelpers.MockRoundService
	settlement *testhelpers.MockSettlementService
	users      *testhelpers.MockUserRepository
	records    *testhelpers.MockMatchRecordRepository
	server     *Server
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	f := &serverFixture{
		identity:   new(testhelpers.MockIdentityService),
		voting:     new(testhelpers.MockVotingService),
		betting:    new(testhelpers.MockBettingService),
		rounds:     new(testhelpers.MockRoundService),
		settlement: new(testhelpers.MockSettlementService),
		users:      new(testhelpers.MockUserRepository),
		records:    new(testhelpers.MockMatchRecordRepository),
	}
	f.server = NewServer(nil, f.identity, f.voting, f.betting, f.rounds, f.settlement, f.users, f.records)
	return f
}

func (f *serverFixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *serverFixture) withSession(session *interfaces.Session) {
	f.identity.On("VerifySession", mock.Anything, "valid-token").Return(session, nil)
}

func TestLogin_ReturnsTokenAndProfile(t *testing.T) {
	f := newServerFixture(t)

	f.identity.On("Authenticate", mock.Anything, "alice", "correct-horse").Return("signed-token", &entities.User{
		ID:         "user-1",
		Username:   "alice",
		TotalCoins: 100,
	}, nil)

	rec := f.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "correct-horse",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp authResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "alice", resp.Profile.Username)
}

func TestLogin_BadCredentialsReturns401(t *testing.T) {
	f := newServerFixture(t)

	f.identity.On("Authenticate", mock.Anything, "alice", "wrong").Return("", nil, apperror.Validation("invalid username or password"))

	rec := f.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceBet_RequiresAuth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/bets", "", gin.H{
		"player": "Aki", "prop": "Gets a pentakill", "amount": 5,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.betting.AssertNotCalled(t, "PlaceBet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceBet_Accepted(t *testing.T) {
	f := newServerFixture(t)
	f.withSession(&interfaces.Session{UserID: "user-1", Username: "alice"})

	f.betting.On("PlaceBet", mock.Anything, "user-1", "Aki", "Gets a pentakill", int64(5), int64(0)).Return(&entities.Bet{
		ID: 9, UserID: "user-1", Player: "Aki", Prop: "Gets a pentakill", Amount: 5, Odds: 4,
	}, nil)

	rec := f.request(t, http.MethodPost, "/api/bets", "valid-token", gin.H{
		"player": "Aki", "prop": "Gets a pentakill", "amount": 5,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(20), body["potential_payout"])
}

func TestPlaceBet_ClosedRoundReturns400(t *testing.T) {
	f := newServerFixture(t)
	f.withSession(&interfaces.Session{UserID: "user-1"})

	f.betting.On("PlaceBet", mock.Anything, "user-1", "Aki", "Gets a pentakill", int64(5), int64(0)).
		Return(nil, apperror.Validation("betting is not open"))

	rec := f.request(t, http.MethodPost, "/api/bets", "valid-token", gin.H{
		"player": "Aki", "prop": "Gets a pentakill", "amount": 5,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes_ForbiddenForRegularUsers(t *testing.T) {
	f := newServerFixture(t)
	f.withSession(&interfaces.Session{UserID: "user-1", IsAdmin: false})

	rec := f.request(t, http.MethodPost, "/api/admin/round/close", "valid-token", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.rounds.AssertNotCalled(t, "CloseBetting", mock.Anything)
}

func TestEndMatch_DecisionsFeedTheOracle(t *testing.T) {
	f := newServerFixture(t)
	f.withSession(&interfaces.Session{UserID: "admin-1", IsAdmin: true})

	f.settlement.On("EndMatch", mock.Anything, mock.AnythingOfType("interfaces.OutcomeFn")).
		Run(func(args mock.Arguments) {
			decide := args.Get(1).(interfaces.OutcomeFn)

			won, err := decide(&entities.Bet{ID: 7})
			assert.NoError(t, err)
			assert.True(t, won)

			_, err = decide(&entities.Bet{ID: 99})
			assert.Error(t, err)
		}).
		Return(&interfaces.SettlementResult{
			Settled:   []interfaces.UserSettlement{{UserID: "user-1", Winnings: 20}},
			MVPWinner: "Aki",
		}, nil)

	rec := f.request(t, http.MethodPost, "/api/admin/match/end", "valid-token", gin.H{
		"decisions": gin.H{"7": true},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["users_settled"])
	assert.Equal(t, "Aki", body["mvp_winner"])
}

func TestEndMatch_NonNumericBetIDRejected(t *testing.T) {
	f := newServerFixture(t)
	f.withSession(&interfaces.Session{UserID: "admin-1", IsAdmin: true})

	rec := f.request(t, http.MethodPost, "/api/admin/match/end", "valid-token", gin.H{
		"decisions": gin.H{"not-a-number": true},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.settlement.AssertNotCalled(t, "EndMatch", mock.Anything, mock.Anything)
}

func TestRoundStatus_Public(t *testing.T) {
	f := newServerFixture(t)

	f.rounds.On("State", mock.Anything).Return(&entities.Round{
		State:        entities.RoundStateOpen,
		Distribution: 10,
	}, nil)

	rec := f.request(t, http.MethodGet, "/api/round", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "open", body["state"])
	assert.Equal(t, true, body["betting_open"])
}
