package interfaces

import (
	"context"

	"matchbook/domain/entities"
)

// Session identifies an authenticated caller.
type Session struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// IdentityService issues and validates credentials.
type IdentityService interface {
	// Register creates a new account with the starting balance
	Register(ctx context.Context, username, password string) (*entities.User, error)

	// Authenticate verifies a username/password pair and issues a signed token
	Authenticate(ctx context.Context, username, password string) (token string, user *entities.User, err error)

	// VerifySession validates a token and resolves it to a session
	VerifySession(ctx context.Context, token string) (*Session, error)

	// RevokeSession invalidates a token until its natural expiry
	RevokeSession(ctx context.Context, token string) error
}

// VotingService handles MVP podium votes and their tally.
type VotingService interface {
	// SubmitVote records a user's podium picks, replacing any prior vote
	SubmitVote(ctx context.Context, userID, first, second, third string) (*entities.Vote, error)

	// TallyCurrent ranks the roster by the current match's votes
	TallyCurrent(ctx context.Context) ([]entities.PlayerScore, error)
}

// BettingService handles bet placement against the open round.
type BettingService interface {
	// PlaceBet stakes available coins on a player proposition
	PlaceBet(ctx context.Context, userID, player, prop string, amount, odds int64) (*entities.Bet, error)

	// UserBets returns the caller's bets for the current match
	UserBets(ctx context.Context, userID string) ([]*entities.Bet, error)
}

// DistributionResult summarizes a coin distribution.
type DistributionResult struct {
	Amount      int64
	UsersPaid   int
	CoinsMoved  int64
	FailedUsers []string
}

// RoundService drives the betting-round state machine.
type RoundService interface {
	// State returns the current round
	State(ctx context.Context) (*entities.Round, error)

	// OpenBetting distributes coins to every non-admin user and opens the round
	OpenBetting(ctx context.Context, amount int64) (*DistributionResult, error)

	// CloseBetting zeroes all non-admin available coins and closes the round
	CloseBetting(ctx context.Context) error

	// StartMatch clears every user's voted flag for a fresh voting round
	StartMatch(ctx context.Context) error
}

// OutcomeFn decides whether a bet's proposition came true. It is supplied by
// the caller: the admin front end collects one decision per bet, tests use
// fixtures.
type OutcomeFn func(bet *entities.Bet) (won bool, err error)

// UserSettlement summarizes the settlement outcome for one user.
type UserSettlement struct {
	UserID    string
	Winnings  int64
	MatchName string
	Bets      []entities.SettledBet
}

// SettlementResult summarizes a completed match settlement.
type SettlementResult struct {
	Settled     []UserSettlement
	MVPWinner   string
	FailedUsers []string
}

// SettlementService resolves all open bets and books the results.
type SettlementService interface {
	// EndMatch resolves every unresolved bet via the outcome oracle, credits
	// winnings, writes history records, and resets the round. Re-running
	// against a settled match writes nothing.
	EndMatch(ctx context.Context, decide OutcomeFn) (*SettlementResult, error)
}
