package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/domain/testhelpers"
	"matchbook/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type settlementFixture struct {
	userRepo   *testhelpers.MockUserRepository
	voteRepo   *testhelpers.MockVoteRepository
	betRepo    *testhelpers.MockBetRepository
	recordRepo *testhelpers.MockMatchRecordRepository
	roundRepo  *testhelpers.MockRoundRepository
	service    interfaces.SettlementService
}

func newSettlementFixture() *settlementFixture {
	f := &settlementFixture{
		userRepo:   new(testhelpers.MockUserRepository),
		voteRepo:   new(testhelpers.MockVoteRepository),
		betRepo:    new(testhelpers.MockBetRepository),
		recordRepo: new(testhelpers.MockMatchRecordRepository),
		roundRepo:  new(testhelpers.MockRoundRepository),
	}
	f.service = NewSettlementService(f.userRepo, f.voteRepo, f.betRepo, f.recordRepo, f.roundRepo)
	return f
}

// expectReset wires the round-reset calls every settlement run performs.
func (f *settlementFixture) expectReset(ctx context.Context) {
	f.userRepo.On("ResetVoted", ctx).Return(nil)
	f.userRepo.On("ZeroAvailableCoins", ctx).Return(int64(0), nil)
	f.voteRepo.On("DeleteByMatch", ctx, entities.CurrentMatchID).Return(int64(0), nil)
	f.roundRepo.On("Get", ctx).Return(&entities.Round{State: entities.RoundStateClosed, Distribution: 10}, nil)
	f.roundRepo.On("Save", ctx, mock.MatchedBy(func(r *entities.Round) bool {
		return r.State == entities.RoundStateIdle && r.Distribution == 0
	})).Return(nil)
}

func decideByID(outcomes map[int64]bool) interfaces.OutcomeFn {
	return func(bet *entities.Bet) (bool, error) {
		won, ok := outcomes[bet.ID]
		if !ok {
			return false, fmt.Errorf("no decision for bet %d", bet.ID)
		}
		return won, nil
	}
}

func TestSettlementService_EndMatch_WinningsAndHistory(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{
		{ID: 1, UserID: "user-1", Player: "Aki", Prop: "Assist", Amount: 5, Odds: 4},
		{ID: 2, UserID: "user-1", Player: "Bruno", Prop: "Pentakill", Amount: 3, Odds: 4},
	}, nil)

	f.betRepo.On("Resolve", ctx, int64(1), true).Return(nil)
	f.betRepo.On("Resolve", ctx, int64(2), false).Return(nil)

	// The won bet pays 5*4=20; the lost stake was taken at placement and is
	// not deducted again
	f.userRepo.On("GetByID", ctx, "user-1").Return(&entities.User{
		ID:             "user-1",
		TotalCoins:     40,
		AvailableCoins: 2,
	}, nil)
	f.userRepo.On("UpdateCoins", ctx, "user-1", int64(60), int64(2)).Return(nil)

	f.recordRepo.On("CountByUser", ctx, "user-1").Return(int64(2), nil)
	f.recordRepo.On("Append", ctx, mock.MatchedBy(func(r *entities.MatchRecord) bool {
		return r.UserID == "user-1" &&
			r.MatchName == "Match 3" &&
			len(r.Bets) == 2 &&
			r.Bets[0].Won && r.Bets[0].Payout == 20 &&
			!r.Bets[1].Won && r.Bets[1].Payout == 0
	})).Return(nil)

	f.voteRepo.On("ListByMatch", ctx, entities.CurrentMatchID).Return([]*entities.Vote{}, nil)
	f.expectReset(ctx)

	result, err := f.service.EndMatch(ctx, decideByID(map[int64]bool{1: true, 2: false}))

	assert.NoError(t, err)
	assert.Len(t, result.Settled, 1)
	assert.Equal(t, int64(20), result.Settled[0].Winnings)
	assert.Equal(t, "Match 3", result.Settled[0].MatchName)
	f.betRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.recordRepo.AssertExpectations(t)
	f.roundRepo.AssertExpectations(t)
}

func TestSettlementService_EndMatch_AllBetsLostSkipsCoinUpdate(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{
		{ID: 1, UserID: "user-1", Player: "Aki", Prop: "Assist", Amount: 5, Odds: 4},
	}, nil)
	f.betRepo.On("Resolve", ctx, int64(1), false).Return(nil)
	f.recordRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)
	f.recordRepo.On("Append", ctx, mock.MatchedBy(func(r *entities.MatchRecord) bool {
		return r.MatchName == "Match 1"
	})).Return(nil)
	f.voteRepo.On("ListByMatch", ctx, entities.CurrentMatchID).Return([]*entities.Vote{}, nil)
	f.expectReset(ctx)

	result, err := f.service.EndMatch(ctx, decideByID(map[int64]bool{1: false}))

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.Settled[0].Winnings)
	// No winnings means no balance write at all
	f.userRepo.AssertNotCalled(t, "UpdateCoins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettlementService_EndMatch_RerunIsNoOp(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	// Everything already resolved: the unresolved filter returns nothing
	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{}, nil)
	f.voteRepo.On("ListByMatch", ctx, entities.CurrentMatchID).Return([]*entities.Vote{}, nil)
	f.expectReset(ctx)

	result, err := f.service.EndMatch(ctx, decideByID(nil))

	assert.NoError(t, err)
	assert.Empty(t, result.Settled)
	f.recordRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "UpdateCoins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettlementService_EndMatch_MissingOutcomeAborts(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{
		{ID: 7, UserID: "user-1", Player: "Aki", Prop: "Assist", Amount: 5, Odds: 4},
	}, nil)

	_, err := f.service.EndMatch(ctx, decideByID(map[int64]bool{}))

	assert.True(t, apperror.IsValidation(err))
	f.betRepo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	f.recordRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSettlementService_EndMatch_MissingMidListOutcomeWritesNothing(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	// A decision exists for the first bet but not the second. The aborted
	// settlement must leave both bets unresolved, or bet 1's eventual payout
	// would vanish: a retry only sees unresolved bets.
	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{
		{ID: 1, UserID: "user-1", Player: "Aki", Prop: "Assist", Amount: 5, Odds: 4},
		{ID: 2, UserID: "user-1", Player: "Bruno", Prop: "Pentakill", Amount: 3, Odds: 4},
	}, nil)

	_, err := f.service.EndMatch(ctx, decideByID(map[int64]bool{1: true}))

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "bet 2")
	f.betRepo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "UpdateCoins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.recordRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.roundRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettlementService_EndMatch_FailedUserDoesNotBlockOthers(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{
		{ID: 1, UserID: "user-a", Player: "Aki", Prop: "Assist", Amount: 5, Odds: 4},
		{ID: 2, UserID: "user-b", Player: "Bruno", Prop: "Assist", Amount: 2, Odds: 4},
	}, nil)

	// user-a's write fails; settlement moves on to user-b
	f.betRepo.On("Resolve", ctx, int64(1), true).Return(errors.New("connection reset"))
	f.betRepo.On("Resolve", ctx, int64(2), true).Return(nil)
	f.userRepo.On("GetByID", ctx, "user-b").Return(&entities.User{ID: "user-b", TotalCoins: 10}, nil)
	f.userRepo.On("UpdateCoins", ctx, "user-b", int64(18), int64(0)).Return(nil)
	f.recordRepo.On("CountByUser", ctx, "user-b").Return(int64(0), nil)
	f.recordRepo.On("Append", ctx, mock.MatchedBy(func(r *entities.MatchRecord) bool {
		return r.UserID == "user-b"
	})).Return(nil)
	f.voteRepo.On("ListByMatch", ctx, entities.CurrentMatchID).Return([]*entities.Vote{}, nil)
	f.expectReset(ctx)

	result, err := f.service.EndMatch(ctx, decideByID(map[int64]bool{1: true, 2: true}))

	assert.NoError(t, err)
	assert.Equal(t, []string{"user-a"}, result.FailedUsers)
	assert.Len(t, result.Settled, 1)
	assert.Equal(t, "user-b", result.Settled[0].UserID)
}

func TestSettlementService_EndMatch_MVPBonus(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	f := newSettlementFixture()

	f.betRepo.On("ListByMatch", ctx, entities.CurrentMatchID, true).Return([]*entities.Bet{}, nil)
	f.voteRepo.On("ListByMatch", ctx, entities.CurrentMatchID).Return([]*entities.Vote{
		{UserID: "u1", FirstPlace: "Aki", SecondPlace: "Bruno", ThirdPlace: "Cass"},
		{UserID: "u2", FirstPlace: "Aki", SecondPlace: "Cass", ThirdPlace: "Bruno"},
		{UserID: "u3", FirstPlace: "Bruno", SecondPlace: "Aki", ThirdPlace: "Cass"},
	}, nil)
	// Aki tops the tally; both first-place Aki voters get a point
	f.userRepo.On("AddMVPPoints", ctx, "u1", int64(1)).Return(nil)
	f.userRepo.On("AddMVPPoints", ctx, "u2", int64(1)).Return(nil)
	f.expectReset(ctx)

	result, err := f.service.EndMatch(ctx, decideByID(nil))

	assert.NoError(t, err)
	assert.Equal(t, "Aki", result.MVPWinner)
	f.userRepo.AssertExpectations(t)
	f.userRepo.AssertNotCalled(t, "AddMVPPoints", ctx, "u3", int64(1))
}
