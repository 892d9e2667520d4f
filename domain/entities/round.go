package entities

import (
	"fmt"
	"time"
)

// RoundState represents where the single betting round is in its lifecycle.
type RoundState string

const (
	// RoundStateIdle means no coins are distributed and no bets are accepted.
	RoundStateIdle RoundState = "idle"
	// RoundStateOpen means coins have been distributed and bets are accepted.
	RoundStateOpen RoundState = "open"
	// RoundStateClosed means betting is closed but open bets await settlement.
	RoundStateClosed RoundState = "closed"
)

// Round is the persisted state machine guarding the betting lifecycle
// (idle -> open -> closed -> idle). It exists so that re-invoking a
// non-idempotent admin action is rejected instead of double-applied.
type Round struct {
	State        RoundState `db:"state"`
	Distribution int64      `db:"distribution"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// IsOpen reports whether bets are currently accepted.
func (r *Round) IsOpen() bool {
	return r.State == RoundStateOpen
}

// Open transitions the round to open with the given distribution amount.
// Only an idle round can be opened; re-opening would double-distribute coins.
func (r *Round) Open(distribution int64) error {
	if r.State != RoundStateIdle {
		return fmt.Errorf("cannot open betting: round is %s", r.State)
	}
	r.State = RoundStateOpen
	r.Distribution = distribution
	return nil
}

// Close transitions an open round to closed.
func (r *Round) Close() error {
	if r.State != RoundStateOpen {
		return fmt.Errorf("cannot close betting: round is %s", r.State)
	}
	r.State = RoundStateClosed
	return nil
}

// Finish returns the round to idle after settlement. Valid from any state;
// settling an already-idle round is a no-op by construction since no
// unresolved bets remain.
func (r *Round) Finish() {
	r.State = RoundStateIdle
	r.Distribution = 0
}
