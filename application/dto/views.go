package dto

import "time"

// ProfileDTO is the signed-in user's own view of their account.
type ProfileDTO struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	IsAdmin        bool   `json:"is_admin"`
	TotalCoins     int64  `json:"total_coins"`
	AvailableCoins int64  `json:"available_coins"`
	MVPPoints      int64  `json:"mvp_points"`
	Voted          bool   `json:"voted"`
	Summary        string `json:"summary"`
}

// LeaderboardRowDTO is one row of the public standings.
type LeaderboardRowDTO struct {
	Rank       int    `json:"rank"`
	Username   string `json:"username"`
	TotalCoins int64  `json:"total_coins"`
	MVPPoints  int64  `json:"mvp_points"`
}

// TallyRowDTO is one player's current vote score.
type TallyRowDTO struct {
	Player string `json:"player"`
	Score  int64  `json:"score"`
}

// BetDTO is a bet as shown to the user who placed it.
type BetDTO struct {
	ID              int64  `json:"id"`
	Player          string `json:"player"`
	Prop            string `json:"prop"`
	Amount          int64  `json:"amount"`
	Odds            int64  `json:"odds"`
	PotentialPayout int64  `json:"potential_payout"`
	Resolved        bool   `json:"resolved"`
	Won             bool   `json:"won"`
}

// SettledBetDTO is a bet inside a history entry, with its display color.
type SettledBetDTO struct {
	Player string `json:"player"`
	Prop   string `json:"prop"`
	Amount int64  `json:"amount"`
	Odds   int64  `json:"odds"`
	Won    bool   `json:"won"`
	Payout int64  `json:"payout"`
	Color  string `json:"color"`
}

// HistoryEntryDTO is one settled match in a user's history, newest first.
type HistoryEntryDTO struct {
	MatchName   string          `json:"match_name"`
	Bets        []SettledBetDTO `json:"bets"`
	TotalStaked int64           `json:"total_staked"`
	Winnings    int64           `json:"winnings"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RoundStatusDTO describes the betting round to clients.
type RoundStatusDTO struct {
	State        string `json:"state"`
	Distribution int64  `json:"distribution"`
	BettingOpen  bool   `json:"betting_open"`
}

// DistributionResultDTO is the admin's receipt for opening a betting round.
type DistributionResultDTO struct {
	Amount      int64    `json:"amount"`
	UsersPaid   int      `json:"users_paid"`
	CoinsMoved  int64    `json:"coins_moved"`
	FailedUsers []string `json:"failed_users,omitempty"`
}

// SettlementResultDTO is the admin's receipt for ending a match.
type SettlementResultDTO struct {
	UsersSettled int      `json:"users_settled"`
	MVPWinner    string   `json:"mvp_winner,omitempty"`
	FailedUsers  []string `json:"failed_users,omitempty"`
}
