package entities

import "time"

// SettledBet is the immutable snapshot of one bet as it was settled, stored
// inside a match record.
type SettledBet struct {
	BetID  int64  `json:"bet_id"`
	Player string `json:"player"`
	Prop   string `json:"prop"`
	Amount int64  `json:"amount"`
	Odds   int64  `json:"odds"`
	Won    bool   `json:"won"`
	Payout int64  `json:"payout"`
}

// MatchRecord is one user's append-only settlement record for a single match.
// MatchName is sequential per user ("Match 1", "Match 2", ...).
type MatchRecord struct {
	ID        int64        `db:"id"`
	UserID    string       `db:"user_id"`
	MatchName string       `db:"match_name"`
	Bets      []SettledBet `db:"bets_data"`
	CreatedAt time.Time    `db:"created_at"`
}

// TotalStaked returns the sum of all staked amounts in the record.
func (r *MatchRecord) TotalStaked() int64 {
	var total int64
	for _, b := range r.Bets {
		total += b.Amount
	}
	return total
}

// TotalWinnings returns the sum of all payouts in the record.
func (r *MatchRecord) TotalWinnings() int64 {
	var total int64
	for _, b := range r.Bets {
		total += b.Payout
	}
	return total
}
