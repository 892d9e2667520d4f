// Package metrics exposes the Prometheus instruments the HTTP layer records.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BetsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_bets_placed_total",
		Help: "Bets accepted since startup",
	})

	VotesSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_votes_submitted_total",
		Help: "MVP votes accepted since startup",
	})

	CoinsDistributed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_coins_distributed_total",
		Help: "Coins handed out when betting rounds opened",
	})

	MatchesSettled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matchbook_matches_settled_total",
		Help: "Completed settlement runs",
	})

	RoundState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchbook_round_state",
		Help: "Current betting round state (1 for the active state, 0 otherwise)",
	}, []string{"state"})
)

func init() {
	prometheus.MustRegister(BetsPlaced, VotesSubmitted, CoinsDistributed, MatchesSettled, RoundState)
}

// SetRoundState flips the state gauge so exactly one label reads 1.
func SetRoundState(state string) {
	for _, s := range []string{"idle", "open", "closed"} {
		value := 0.0
		if s == state {
			value = 1.0
		}
		RoundState.WithLabelValues(s).Set(value)
	}
}
