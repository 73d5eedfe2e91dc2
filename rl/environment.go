package rl

import (
	"github.com/bridgelab/bridge-rl/bridge"
)

// Environment is the sequential episodic contract: exactly one agent acts
// per timestep, attributed to the active seat's controller.
type Environment interface {
	// Reset deals a new hand and returns the initial observation per seat.
	Reset() (map[bridge.Seat]Observation, *Info, error)
	// Step applies one action index for the active seat.
	Step(action int) (*StepResult, error)
	// ActiveSeat returns the agent whose action is expected now. Stable
	// across repeated calls without an intervening Step.
	ActiveSeat() bridge.Seat
	// LegalActions returns the action indices legal for the active seat.
	LegalActions() []int
	// Done reports whether the episode reached a terminal state.
	Done() bool
	ObservationSize() int
	ActionSpaceSize() int
}

// SimultaneousEnvironment receives one action per seat per timestep; all
// seats except the active one must submit the empty sentinel action.
type SimultaneousEnvironment interface {
	Reset() (map[bridge.Seat]Observation, *Info, error)
	Step(actions map[bridge.Seat]int) (*StepResult, error)
	ActiveSeat() bridge.Seat
	LegalActions() []int
	Done() bool
	ObservationSize() int
	ActionSpaceSize() int
}

// StepResult is what one timestep returns: per-seat observations and
// rewards, the terminal flag and the auxiliary info record.
type StepResult struct {
	Observations map[bridge.Seat]Observation
	Rewards      map[bridge.Seat]float64
	Done         bool
	Info         Info
}

// Info attributes what happened in a step to a seat and timestep, so a
// caller can distinguish "game ended" from "agent misbehaved".
type Info struct {
	Step  int
	Seat  bridge.Seat
	Phase string

	// Illegal is set when the submitted action violated game rules;
	// Penalized additionally marks that the penalize policy substituted a
	// random legal action and charged the penalty reward.
	Illegal   bool
	Penalized bool

	PassedOut   bool
	TrickWinner *bridge.Seat
	Contract    string
	Declarer    *bridge.Seat
	Scoring     string
	Err         string
}
