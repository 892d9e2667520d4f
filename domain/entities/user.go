package entities

import (
	"errors"
	"time"
)

// User represents a player account with its coin balances.
//
// TotalCoins is the banked balance; AvailableCoins is the sub-allocation
// handed out for the open betting round. Available coins never exceed what
// the last distribution granted.
type User struct {
	ID             string    `db:"id"`
	Username       string    `db:"username"`
	PasswordHash   string    `db:"password_hash"`
	IsAdmin        bool      `db:"is_admin"`
	TotalCoins     int64     `db:"total_coins"`
	AvailableCoins int64     `db:"available_coins"`
	MVPPoints      int64     `db:"mvp_points"`
	Voted          bool      `db:"voted"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// CanAfford checks if the user has enough available coins to stake amount.
func (u *User) CanAfford(amount int64) bool {
	return u.AvailableCoins >= amount
}

// DistributionFor returns how many coins a distribution of amount moves from
// the bank to the available balance. Users with a smaller bank get their full
// remaining balance.
func (u *User) DistributionFor(amount int64) int64 {
	if u.TotalCoins < amount {
		return u.TotalCoins
	}
	return amount
}

// Validate performs basic validation on the user.
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username must not be empty")
	}

	if u.TotalCoins < 0 {
		return errors.New("total coins must not be negative")
	}

	if u.AvailableCoins < 0 {
		return errors.New("available coins must not be negative")
	}

	return nil
}
