package entities

import (
	"errors"
	"time"
)

// CurrentMatchID identifies the single active match all open votes and bets
// belong to.
const CurrentMatchID = "current"

// Vote is one user's MVP podium prediction for a match. The three picks must
// be pairwise distinct; resubmitting replaces the stored vote.
type Vote struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	MatchID     string    `db:"match_id"`
	FirstPlace  string    `db:"first_place"`
	SecondPlace string    `db:"second_place"`
	ThirdPlace  string    `db:"third_place"`
	CreatedAt   time.Time `db:"created_at"`
}

// Podium point values for each placement.
const (
	FirstPlacePoints  = 5
	SecondPlacePoints = 3
	ThirdPlacePoints  = 2
)

// Picks returns the three picks in podium order.
func (v *Vote) Picks() [3]string {
	return [3]string{v.FirstPlace, v.SecondPlace, v.ThirdPlace}
}

// Validate checks that all picks are present and pairwise distinct.
func (v *Vote) Validate() error {
	if v.FirstPlace == "" || v.SecondPlace == "" || v.ThirdPlace == "" {
		return errors.New("all three podium picks are required")
	}

	if v.FirstPlace == v.SecondPlace || v.FirstPlace == v.ThirdPlace || v.SecondPlace == v.ThirdPlace {
		return errors.New("podium picks must be distinct players")
	}

	return nil
}

// PlayerScore is one row of a ranked MVP tally.
type PlayerScore struct {
	Player string `json:"player"`
	Score  int64  `json:"score"`
}
