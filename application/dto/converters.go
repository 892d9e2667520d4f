package dto

import (
	"fmt"

	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
)

// UserToProfileDTO converts a user entity into their own profile view
func UserToProfileDTO(user *entities.User) ProfileDTO {
	return ProfileDTO{
		ID:             user.ID,
		Username:       user.Username,
		IsAdmin:        user.IsAdmin,
		TotalCoins:     user.TotalCoins,
		AvailableCoins: user.AvailableCoins,
		MVPPoints:      user.MVPPoints,
		Voted:          user.Voted,
		Summary:        fmt.Sprintf("%d coins total, %d available to bet", user.TotalCoins, user.AvailableCoins),
	}
}

// UsersToLeaderboard converts users (already ordered by total coins) into
// ranked leaderboard rows
func UsersToLeaderboard(users []*entities.User) []LeaderboardRowDTO {
	rows := make([]LeaderboardRowDTO, len(users))
	for i, user := range users {
		rows[i] = LeaderboardRowDTO{
			Rank:       i + 1,
			Username:   user.Username,
			TotalCoins: user.TotalCoins,
			MVPPoints:  user.MVPPoints,
		}
	}
	return rows
}

// ScoresToTallyRows converts a ranked tally into its client view
func ScoresToTallyRows(scores []entities.PlayerScore) []TallyRowDTO {
	rows := make([]TallyRowDTO, len(scores))
	for i, score := range scores {
		rows[i] = TallyRowDTO{Player: score.Player, Score: score.Score}
	}
	return rows
}

// BetToDTO converts a bet entity into its client view
func BetToDTO(bet *entities.Bet) BetDTO {
	return BetDTO{
		ID:              bet.ID,
		Player:          bet.Player,
		Prop:            bet.Prop,
		Amount:          bet.Amount,
		Odds:            bet.Odds,
		PotentialPayout: bet.PotentialPayout(),
		Resolved:        bet.Resolved,
		Won:             bet.Won,
	}
}

// BetsToDTOs converts a slice of bets
func BetsToDTOs(bets []*entities.Bet) []BetDTO {
	dtos := make([]BetDTO, len(bets))
	for i, bet := range bets {
		dtos[i] = BetToDTO(bet)
	}
	return dtos
}

// RecordToHistoryEntry converts a match record into a history entry.
// Won bets render green, lost bets red.
func RecordToHistoryEntry(record *entities.MatchRecord) HistoryEntryDTO {
	entry := HistoryEntryDTO{
		MatchName:   record.MatchName,
		Bets:        make([]SettledBetDTO, len(record.Bets)),
		TotalStaked: record.TotalStaked(),
		Winnings:    record.TotalWinnings(),
		CreatedAt:   record.CreatedAt,
	}
	for i, bet := range record.Bets {
		color := "red"
		if bet.Won {
			color = "green"
		}
		entry.Bets[i] = SettledBetDTO{
			Player: bet.Player,
			Prop:   bet.Prop,
			Amount: bet.Amount,
			Odds:   bet.Odds,
			Won:    bet.Won,
			Payout: bet.Payout,
			Color:  color,
		}
	}
	return entry
}

// RecordsToHistory converts a user's records, preserving their order
func RecordsToHistory(records []*entities.MatchRecord) []HistoryEntryDTO {
	entries := make([]HistoryEntryDTO, len(records))
	for i, record := range records {
		entries[i] = RecordToHistoryEntry(record)
	}
	return entries
}

// RoundToStatusDTO converts the round state machine into its client view
func RoundToStatusDTO(round *entities.Round) RoundStatusDTO {
	return RoundStatusDTO{
		State:        string(round.State),
		Distribution: round.Distribution,
		BettingOpen:  round.IsOpen(),
	}
}

// DistributionToDTO converts an open-betting result into the admin receipt
func DistributionToDTO(result *interfaces.DistributionResult) DistributionResultDTO {
	return DistributionResultDTO{
		Amount:      result.Amount,
		UsersPaid:   result.UsersPaid,
		CoinsMoved:  result.CoinsMoved,
		FailedUsers: result.FailedUsers,
	}
}

// SettlementToDTO converts an end-match result into the admin receipt
func SettlementToDTO(result *interfaces.SettlementResult) SettlementResultDTO {
	return SettlementResultDTO{
		UsersSettled: len(result.Settled),
		MVPWinner:    result.MVPWinner,
		FailedUsers:  result.FailedUsers,
	}
}
