package env

import (
	"fmt"
	"math/rand"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/rl"
)

// Env is the sequential bridge environment: one action per timestep,
// submitted by the controller of the seat slot to act. The declarer acts
// for the dummy during play.
type Env struct {
	config *Config
	rng    *rand.Rand

	game    *bridge.Game
	dealer  bridge.Seat
	episode int
	step    int
}

var _ rl.Environment = &Env{}

// NewEnv creates a sequential environment. A nil config gets defaults.
func NewEnv(config *Config) *Env {
	if config == nil {
		config = DefaultConfig()
	}
	return &Env{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		dealer: config.Dealer,
	}
}

// Reset deals the next hand and opens the auction. The dealer follows the
// configured dealer policy across episodes.
func (e *Env) Reset() (map[bridge.Seat]rl.Observation, *rl.Info, error) {
	dealer := e.nextDealer()
	e.game = bridge.GameFromDeal(
		bridge.NewDeal(dealer, e.rng),
		e.config.Scoring,
		e.config.Vulnerable,
	)
	e.episode++
	e.step = 0

	info := &rl.Info{
		Seat:    e.ActiveSeat(),
		Phase:   e.game.Phase().String(),
		Scoring: e.config.Scoring.String(),
	}
	return Observations(e.game), info, nil
}

func (e *Env) nextDealer() bridge.Seat {
	switch e.config.DealerPolicy {
	case DealerFixed:
		return e.config.Dealer
	case DealerRandom:
		return bridge.Seat(e.rng.Intn(bridge.NumSeats))
	}
	if e.episode == 0 {
		e.dealer = e.config.Dealer
	} else {
		e.dealer = e.dealer.Next()
	}
	return e.dealer
}

// Game exposes the underlying state machine, read-only by convention.
func (e *Env) Game() *bridge.Game {
	return e.game
}

// ActiveSeat returns the agent expected to act: the controller of the seat
// slot to act. Stable across repeated calls without an intervening Step.
func (e *Env) ActiveSeat() bridge.Seat {
	return e.game.Controller(e.game.ActiveSeat())
}

// LegalActions returns the sorted action indices legal right now.
func (e *Env) LegalActions() []int {
	return LegalActions(e.game)
}

// Done reports whether the hand has completed.
func (e *Env) Done() bool {
	return e.game.Done()
}

func (e *Env) ObservationSize() int { return ObservationSize }
func (e *Env) ActionSpaceSize() int { return ActionSpaceSize }

// Step applies one action index for the active agent. The illegal-action
// policy decides whether a rule violation surfaces as an error with state
// unchanged, or is substituted with a random legal action and penalized.
func (e *Env) Step(action int) (*rl.StepResult, error) {
	if e.game == nil {
		return nil, fmt.Errorf("env: Step before Reset")
	}
	if e.game.Done() {
		return nil, fmt.Errorf("env: Step on a completed episode")
	}

	actor := e.ActiveSeat()
	info := rl.Info{
		Step: e.step,
		Seat: actor,
	}

	trickWinner, err := e.apply(action)
	if err != nil {
		if e.config.IllegalPolicy == IllegalRaise {
			return nil, err
		}
		// Penalize: the offending action is replaced with a uniformly
		// random legal one and the actor is charged the penalty.
		info.Illegal = true
		info.Penalized = true
		info.Err = err.Error()
		legal := e.LegalActions()
		substitute := legal[e.rng.Intn(len(legal))]
		trickWinner, err = e.apply(substitute)
		if err != nil {
			return nil, fmt.Errorf("env: substituted action %d rejected: %w", substitute, err)
		}
	}
	e.step++

	rewards := make(map[bridge.Seat]float64, bridge.NumSeats)
	for _, seat := range bridge.Seats {
		rewards[seat] = e.game.RewardFor(seat)
	}
	if info.Penalized {
		rewards[actor] += e.config.Penalty
	}

	info.Phase = e.game.Phase().String()
	info.TrickWinner = trickWinner
	info.PassedOut = e.game.PassedOut()
	info.Scoring = e.config.Scoring.String()
	if contract, ok := e.game.Contract(); ok {
		info.Contract = contract.String()
		declarer := contract.Declarer
		info.Declarer = &declarer
	}

	return &rl.StepResult{
		Observations: Observations(e.game),
		Rewards:      rewards,
		Done:         e.game.Done(),
		Info:         info,
	}, nil
}

// apply decodes and feeds one action through the game, phase-dependent.
// Returns the trick winner when the action completed a trick.
func (e *Env) apply(action int) (*bridge.Seat, error) {
	slot := e.game.ActiveSeat()
	switch e.game.Phase() {
	case bridge.PhaseBidding:
		call, err := DecodeCall(action)
		if err != nil {
			return nil, err
		}
		return nil, e.game.ApplyCall(slot, call)
	case bridge.PhasePlaying:
		card, err := DecodeCard(action)
		if err != nil {
			return nil, err
		}
		res, err := e.game.ApplyCard(slot, card)
		if err != nil {
			return nil, err
		}
		if res != nil {
			winner := res.Winner
			return &winner, nil
		}
		return nil, nil
	}
	return nil, &bridge.IllegalActionError{Seat: slot, Reason: "hand is complete"}
}
