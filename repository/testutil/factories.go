package testutil

import (
	"fmt"

	"matchbook/domain/entities"

	"github.com/google/uuid"
)

// CreateTestUser creates a user with default coin balances
func CreateTestUser(username string) *entities.User {
	return &entities.User{
		ID:             uuid.NewString(),
		Username:       username,
		PasswordHash:   "$2a$04$test.hash.placeholder.value.for.fixtures.only",
		TotalCoins:     100,
		AvailableCoins: 0,
	}
}

// CreateTestUserWithCoins creates a user with specific balances
func CreateTestUserWithCoins(username string, total, available int64) *entities.User {
	user := CreateTestUser(username)
	user.TotalCoins = total
	user.AvailableCoins = available
	return user
}

// CreateTestAdmin creates an admin user
func CreateTestAdmin(username string) *entities.User {
	user := CreateTestUser(username)
	user.IsAdmin = true
	return user
}

// CreateTestVote creates a vote on the current match with a distinct podium
func CreateTestVote(userID string) *entities.Vote {
	return &entities.Vote{
		UserID:      userID,
		MatchID:     entities.CurrentMatchID,
		FirstPlace:  "Aki",
		SecondPlace: "Bruno",
		ThirdPlace:  "Cass",
	}
}

// CreateTestBet creates an unresolved bet on the current match
func CreateTestBet(userID string, amount int64) *entities.Bet {
	return &entities.Bet{
		UserID:  userID,
		MatchID: entities.CurrentMatchID,
		Player:  "Aki",
		Prop:    "Gets a pentakill",
		Amount:  amount,
		Odds:    entities.DefaultOdds,
	}
}

// CreateTestMatchRecord creates a settled match record with n bets
func CreateTestMatchRecord(userID string, matchNumber int, bets int) *entities.MatchRecord {
	record := &entities.MatchRecord{
		UserID:    userID,
		MatchName: fmt.Sprintf("Match %d", matchNumber),
	}
	for i := 0; i < bets; i++ {
		won := i%2 == 0
		var payout int64
		if won {
			payout = 5 * entities.DefaultOdds
		}
		record.Bets = append(record.Bets, entities.SettledBet{
			BetID:  int64(i + 1),
			Player: "Aki",
			Prop:   "Gets a pentakill",
			Amount: 5,
			Odds:   entities.DefaultOdds,
			Won:    won,
			Payout: payout,
		})
	}
	return record
}
