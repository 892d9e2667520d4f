package entities

import (
	"errors"
	"time"
)

// DefaultOdds is the payout multiplier applied when a bet doesn't specify one.
const DefaultOdds = 4

// Bet is a coin-denominated wager on a player proposition. The staked amount
// is deducted from the user's available coins at placement; a winning bet pays
// amount * odds into the bank at settlement, a losing bet pays nothing.
type Bet struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	MatchID   string    `db:"match_id"`
	Player    string    `db:"player"`
	Prop      string    `db:"prop"`
	Amount    int64     `db:"amount"`
	Odds      int64     `db:"odds"`
	Resolved  bool      `db:"resolved"`
	Won       bool      `db:"won"`
	CreatedAt time.Time `db:"created_at"`
}

// Payout returns the coins a resolved bet pays into the bank. Losing bets pay
// nothing; the stake was already taken at placement and is not returned.
func (b *Bet) Payout() int64 {
	if !b.Resolved || !b.Won {
		return 0
	}
	return b.Amount * b.Odds
}

// PotentialPayout returns the payout this bet would yield if it wins.
func (b *Bet) PotentialPayout() int64 {
	return b.Amount * b.Odds
}

// Validate performs basic validation on the bet.
func (b *Bet) Validate() error {
	if b.Player == "" {
		return errors.New("bet must name a player")
	}

	if b.Prop == "" {
		return errors.New("bet must name a proposition")
	}

	if b.Amount <= 0 {
		return errors.New("bet amount must be positive")
	}

	if b.Odds <= 0 {
		return errors.New("bet odds must be positive")
	}

	return nil
}
