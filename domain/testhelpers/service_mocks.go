package testhelpers

import (
	"context"

	"matchbook/domain/entities"
	"matchbook/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockIdentityService is a mock implementation of IdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Register(ctx context.Context, username, password string) (*entities.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockIdentityService) Authenticate(ctx context.Context, username, password string) (string, *entities.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*entities.User), args.Error(2)
}

func (m *MockIdentityService) VerifySession(ctx context.Context, token string) (*interfaces.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Session), args.Error(1)
}

func (m *MockIdentityService) RevokeSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockVotingService is a mock implementation of VotingService
type MockVotingService struct {
	mock.Mock
}

func (m *MockVotingService) SubmitVote(ctx context.Context, userID, first, second, third string) (*entities.Vote, error) {
	args := m.Called(ctx, userID, first, second, third)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vote), args.Error(1)
}

func (m *MockVotingService) TallyCurrent(ctx context.Context) ([]entities.PlayerScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PlayerScore), args.Error(1)
}

// MockBettingService is a mock implementation of BettingService
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) PlaceBet(ctx context.Context, userID, player, prop string, amount, odds int64) (*entities.Bet, error) {
	args := m.Called(ctx, userID, player, prop, amount, odds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bet), args.Error(1)
}

func (m *MockBettingService) UserBets(ctx context.Context, userID string) ([]*entities.Bet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bet), args.Error(1)
}

// MockRoundService is a mock implementation of RoundService
type MockRoundService struct {
	mock.Mock
}

func (m *MockRoundService) State(ctx context.Context) (*entities.Round, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Round), args.Error(1)
}

func (m *MockRoundService) OpenBetting(ctx context.Context, amount int64) (*interfaces.DistributionResult, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DistributionResult), args.Error(1)
}

func (m *MockRoundService) CloseBetting(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoundService) StartMatch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSettlementService is a mock implementation of SettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) EndMatch(ctx context.Context, decide interfaces.OutcomeFn) (*interfaces.SettlementResult, error) {
	args := m.Called(ctx, decide)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SettlementResult), args.Error(1)
}
