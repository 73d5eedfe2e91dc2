package env

import (
	"github.com/bridgelab/bridge-rl/bridge"
)

// DealerPolicy selects the dealer for each new episode.
type DealerPolicy int

const (
	// DealerRotate starts at the configured dealer and advances one seat
	// per episode.
	DealerRotate DealerPolicy = iota
	// DealerFixed keeps the configured dealer for every episode.
	DealerFixed
	// DealerRandom draws the dealer uniformly per episode.
	DealerRandom
)

// IllegalActionPolicy decides what happens when an agent submits an action
// that violates game rules.
type IllegalActionPolicy int

const (
	// IllegalRaise returns a typed error and leaves state unchanged.
	IllegalRaise IllegalActionPolicy = iota
	// IllegalPenalize substitutes a uniformly random legal action for the
	// offending one and charges the penalty reward to the acting agent.
	IllegalPenalize
)

// Config holds the knobs of one environment instance.
type Config struct {
	// Seed drives dealing, dealer draws and penalize substitutions. The
	// same seed replays the same episode sequence.
	Seed int64

	Dealer       bridge.Seat
	DealerPolicy DealerPolicy

	Scoring    bridge.ScoringMode
	Vulnerable bool

	IllegalPolicy IllegalActionPolicy
	// Penalty is the reward charged under IllegalPenalize.
	Penalty float64
}

// DefaultConfig rotates the dealer from North, scores by trick
// differential and raises on illegal actions.
func DefaultConfig() *Config {
	return &Config{
		Seed:          1,
		Dealer:        bridge.North,
		DealerPolicy:  DealerRotate,
		Scoring:       bridge.ScoreTricks,
		Vulnerable:    false,
		IllegalPolicy: IllegalRaise,
		Penalty:       -2,
	}
}
