package env

import (
	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/rl"
)

// SimultaneousEnv wraps the sequential environment behind a step contract
// that takes one action from every seat per timestep. Exactly one seat is
// really acting; the other three must submit the NoAction sentinel.
type SimultaneousEnv struct {
	core *Env
}

var _ rl.SimultaneousEnvironment = &SimultaneousEnv{}

// NewSimultaneousEnv creates the simultaneous variant. A nil config gets
// defaults.
func NewSimultaneousEnv(config *Config) *SimultaneousEnv {
	return &SimultaneousEnv{core: NewEnv(config)}
}

func (s *SimultaneousEnv) Reset() (map[bridge.Seat]rl.Observation, *rl.Info, error) {
	return s.core.Reset()
}

func (s *SimultaneousEnv) ActiveSeat() bridge.Seat { return s.core.ActiveSeat() }
func (s *SimultaneousEnv) LegalActions() []int     { return s.core.LegalActions() }
func (s *SimultaneousEnv) Done() bool              { return s.core.Done() }
func (s *SimultaneousEnv) ObservationSize() int    { return ObservationSize }
func (s *SimultaneousEnv) ActionSpaceSize() int    { return ActionSpaceSize }

// Game exposes the underlying state machine, read-only by convention.
func (s *SimultaneousEnv) Game() *bridge.Game { return s.core.Game() }

// Step validates the full action map before touching game state: every
// seat must be present, passive seats must submit NoAction and the active
// seat must not. Violations return a typed error with state unchanged.
func (s *SimultaneousEnv) Step(actions map[bridge.Seat]int) (*rl.StepResult, error) {
	active := s.core.ActiveSeat()
	for _, seat := range bridge.Seats {
		action, ok := actions[seat]
		if !ok {
			return nil, &bridge.ProtocolViolationError{Seat: seat, Reason: "no action submitted"}
		}
		if seat == active {
			if action == NoAction {
				return nil, &bridge.ProtocolViolationError{Seat: seat, Reason: "active seat submitted the no-op sentinel"}
			}
			continue
		}
		if action != NoAction {
			return nil, &bridge.ProtocolViolationError{Seat: seat, Reason: "passive seat submitted a real action"}
		}
	}
	return s.core.Step(actions[active])
}
