package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/rl"
)

func TestResetReturnsAllSeats(t *testing.T) {
	e := NewEnv(nil)
	obs, info, err := e.Reset()
	require.NoError(t, err)
	require.Len(t, obs, bridge.NumSeats)
	for _, seat := range bridge.Seats {
		require.Len(t, obs[seat], ObservationSize)
	}
	require.Equal(t, "bidding", info.Phase)
	require.False(t, e.Done())
}

func TestStepBeforeReset(t *testing.T) {
	e := NewEnv(nil)
	_, err := e.Step(PassAction)
	require.Error(t, err)
}

func TestPassedOutEpisode(t *testing.T) {
	e := NewEnv(nil)
	_, _, err := e.Reset()
	require.NoError(t, err)

	var res *rl.StepResult
	for i := 0; i < bridge.NumSeats; i++ {
		res, err = e.Step(PassAction)
		require.NoError(t, err)
	}
	require.True(t, res.Done)
	require.True(t, res.Info.PassedOut)
	require.True(t, e.Done())
	for _, seat := range bridge.Seats {
		require.Zero(t, res.Rewards[seat])
	}

	_, err = e.Step(PassAction)
	require.Error(t, err, "stepping a completed episode")
}

func TestDealerPolicies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DealerPolicy = DealerRotate
	cfg.Dealer = bridge.East
	e := NewEnv(cfg)

	e.Reset()
	require.Equal(t, bridge.East, e.Game().Deal.Dealer)
	e.Reset()
	require.Equal(t, bridge.South, e.Game().Deal.Dealer)

	cfg2 := DefaultConfig()
	cfg2.DealerPolicy = DealerFixed
	cfg2.Dealer = bridge.West
	e2 := NewEnv(cfg2)
	e2.Reset()
	e2.Reset()
	require.Equal(t, bridge.West, e2.Game().Deal.Dealer)
}

func TestActiveSeatStable(t *testing.T) {
	e := NewEnv(nil)
	e.Reset()
	first := e.ActiveSeat()
	require.Equal(t, first, e.ActiveSeat())
	require.Equal(t, first, e.ActiveSeat())
}

func TestIllegalRaiseLeavesStateUnchanged(t *testing.T) {
	e := NewEnv(nil)
	e.Reset()

	seat := e.ActiveSeat()
	legal := e.LegalActions()

	// a card play index is invalid during bidding
	_, err := e.Step(0)
	require.Error(t, err)
	require.Equal(t, seat, e.ActiveSeat())
	require.Equal(t, legal, e.LegalActions())

	// an in-range but illegal call: nobody has bid, so double is out
	_, err = e.Step(DoubleAction)
	var illegal *bridge.IllegalActionError
	require.ErrorAs(t, err, &illegal)
	require.Equal(t, seat, e.ActiveSeat())
	require.Equal(t, legal, e.LegalActions())
}

func TestIllegalPenalizeSubstitutes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IllegalPolicy = IllegalPenalize
	e := NewEnv(cfg)
	e.Reset()

	actor := e.ActiveSeat()
	res, err := e.Step(DoubleAction)
	require.NoError(t, err, "penalize mode should substitute, not fail")
	require.True(t, res.Info.Illegal)
	require.True(t, res.Info.Penalized)
	require.Equal(t, cfg.Penalty, res.Rewards[actor])
	// the substituted legal action advanced the auction
	require.NotEqual(t, actor, e.ActiveSeat())
}

func TestEpisodeWithRandomPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	e := NewEnv(cfg)
	_, _, err := e.Reset()
	require.NoError(t, err)

	policy := rl.NewRandomPolicy(11)
	obs := rl.Observation(nil)
	var res *rl.StepResult
	sawDummyControl := false

	for step := 0; !e.Done(); step++ {
		require.Less(t, step, 500, "episode failed to terminate")
		legal := e.LegalActions()
		require.NotEmpty(t, legal)

		if g := e.Game(); g.Phase() == bridge.PhasePlaying {
			if contract, ok := g.Contract(); ok && g.ActiveSeat() == contract.Dummy() {
				require.Equal(t, contract.Declarer, e.ActiveSeat())
				sawDummyControl = true
			}
		}

		action, ok := policy.NextAction(step, obs, legal)
		require.True(t, ok)
		res, err = e.Step(action)
		require.NoError(t, err)
	}

	require.True(t, res.Done)
	if !res.Info.PassedOut {
		require.True(t, sawDummyControl, "dummy slots must be controlled by declarer")
		// partnership rewards mirror each other
		require.Equal(t, res.Rewards[bridge.North], res.Rewards[bridge.South])
		require.Equal(t, res.Rewards[bridge.East], res.Rewards[bridge.West])
		require.Equal(t, res.Rewards[bridge.North], -res.Rewards[bridge.East])
		require.NotNil(t, res.Info.Declarer)
		require.NotEmpty(t, res.Info.Contract)
	}
}

func TestAgentRunsEpisodes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 23
	agent := rl.NewAgent(&rl.AgentConfig{
		Episodes:    3,
		Horizon:     500,
		Policy:      rl.NewRandomPolicy(23),
		Environment: NewEnv(cfg),
	})
	require.NoError(t, agent.Run())

	traces := agent.Traces()
	require.Len(t, traces, 3)
	for _, trace := range traces {
		require.Greater(t, trace.Len(), 0)
		last, ok := trace.Last()
		require.True(t, ok)
		require.True(t, last.Done, "every episode should reach a terminal state")
		require.NotNil(t, trace.FinalRewards)
	}
}
