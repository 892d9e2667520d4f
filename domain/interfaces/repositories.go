package interfaces

import (
	"context"
	"time"

	"matchbook/domain/entities"
)

// UserRepository defines the interface for user profile data access.
// Lookup methods return (nil, nil) on a miss.
type UserRepository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByUsername retrieves a user by their unique username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create persists a new user; fails if the username is taken
	Create(ctx context.Context, user *entities.User) error

	// List returns all users ordered by total coins descending
	List(ctx context.Context) ([]*entities.User, error)

	// UpdateCoins overwrites a user's total and available balances
	UpdateCoins(ctx context.Context, id string, totalCoins, availableCoins int64) error

	// SetVoted sets a single user's voted flag
	SetVoted(ctx context.Context, id string, voted bool) error

	// ResetVoted clears the voted flag for every user
	ResetVoted(ctx context.Context) error

	// ZeroAvailableCoins sets available coins to 0 for every non-admin user
	// and returns the number of users affected
	ZeroAvailableCoins(ctx context.Context) (int64, error)

	// AddMVPPoints adds points to a user's MVP tally
	AddMVPPoints(ctx context.Context, id string, points int64) error
}

// VoteRepository defines the interface for MVP vote data access.
type VoteRepository interface {
	// Upsert replaces any prior vote for (user, match) with the given vote
	Upsert(ctx context.Context, vote *entities.Vote) error

	// ListByMatch returns all votes for a match
	ListByMatch(ctx context.Context, matchID string) ([]*entities.Vote, error)

	// DeleteByMatch removes all votes for a match, returning the count removed
	DeleteByMatch(ctx context.Context, matchID string) (int64, error)
}

// BetRepository defines the interface for bet data access.
type BetRepository interface {
	// Create persists a new unresolved bet
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by its ID
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)

	// ListByMatch returns bets for a match; unresolvedOnly filters out
	// already-settled bets
	ListByMatch(ctx context.Context, matchID string, unresolvedOnly bool) ([]*entities.Bet, error)

	// ListByUser returns a user's bets for a match
	ListByUser(ctx context.Context, userID, matchID string) ([]*entities.Bet, error)

	// Resolve marks a bet resolved with its outcome; resolved bets are immutable
	Resolve(ctx context.Context, id int64, won bool) error
}

// MatchRecordRepository defines the interface for per-user settlement history.
type MatchRecordRepository interface {
	// Append writes a new history record; records are never mutated
	Append(ctx context.Context, record *entities.MatchRecord) error

	// ListByUser returns a user's records ordered newest-first
	ListByUser(ctx context.Context, userID string) ([]*entities.MatchRecord, error)

	// CountByUser returns how many records a user has
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// RoundRepository defines the interface for the single betting-round state row.
type RoundRepository interface {
	// Get returns the current round state
	Get(ctx context.Context) (*entities.Round, error)

	// Save persists the round state
	Save(ctx context.Context, round *entities.Round) error
}

// TokenRepository defines the interface for revoked session tokens.
type TokenRepository interface {
	// Revoke stores a token hash until its natural expiry
	Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error

	// IsRevoked reports whether a token hash has been revoked
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)

	// PurgeExpired deletes revoked tokens past their expiry and returns the
	// number deleted
	PurgeExpired(ctx context.Context) (int64, error)
}
