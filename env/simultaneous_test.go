package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/rl"
)

func sentinelActions(active bridge.Seat, action int) map[bridge.Seat]int {
	actions := make(map[bridge.Seat]int, bridge.NumSeats)
	for _, seat := range bridge.Seats {
		actions[seat] = NoAction
	}
	actions[active] = action
	return actions
}

func TestSimultaneousStepAdvances(t *testing.T) {
	e := NewSimultaneousEnv(nil)
	_, _, err := e.Reset()
	require.NoError(t, err)

	active := e.ActiveSeat()
	res, err := e.Step(sentinelActions(active, PassAction))
	require.NoError(t, err)
	require.False(t, res.Done)
	require.NotEqual(t, active, e.ActiveSeat())
}

func TestSimultaneousMissingSeat(t *testing.T) {
	e := NewSimultaneousEnv(nil)
	e.Reset()

	actions := sentinelActions(e.ActiveSeat(), PassAction)
	delete(actions, bridge.West)

	_, err := e.Step(actions)
	var violation *bridge.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, bridge.West, violation.Seat)
}

func TestSimultaneousPassiveSeatActs(t *testing.T) {
	e := NewSimultaneousEnv(nil)
	e.Reset()

	active := e.ActiveSeat()
	legal := e.LegalActions()

	actions := sentinelActions(active, PassAction)
	actions[active.Next()] = PassAction

	_, err := e.Step(actions)
	var violation *bridge.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, active.Next(), violation.Seat)

	// state untouched by the rejected step
	require.Equal(t, active, e.ActiveSeat())
	require.Equal(t, legal, e.LegalActions())
}

func TestSimultaneousActiveSubmitsSentinel(t *testing.T) {
	e := NewSimultaneousEnv(nil)
	e.Reset()

	active := e.ActiveSeat()
	actions := sentinelActions(active, PassAction)
	actions[active] = NoAction

	_, err := e.Step(actions)
	var violation *bridge.ProtocolViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, active, violation.Seat)
	require.Equal(t, active, e.ActiveSeat())
}

func TestSimultaneousFullEpisode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 17
	agent := &rl.SimultaneousAgent{
		Episodes:    1,
		Horizon:     500,
		Policy:      rl.NewRandomPolicy(17),
		Environment: NewSimultaneousEnv(cfg),
		Sentinel:    NoAction,
	}
	trace, err := agent.RunEpisode(0)
	require.NoError(t, err)
	require.Greater(t, trace.Len(), 0)

	last, ok := trace.Last()
	require.True(t, ok)
	require.True(t, last.Done)
	require.NotNil(t, trace.FinalRewards)
}
