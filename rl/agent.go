package rl

import (
	"fmt"

	"github.com/bridgelab/bridge-rl/bridge"
)

// AgentConfig binds a policy to an environment for a number of episodes.
// Horizon caps the steps per episode; a bridge hand needs at most the
// auction length plus 52 card plays, so the cap only guards against a
// policy that cannot finish.
type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// Agent drives the sequential environment with a single policy acting for
// every seat (self-play).
type Agent struct {
	config *AgentConfig
	traces []*Trace
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config: config,
		traces: make([]*Trace, 0, config.Episodes),
	}
}

// Run executes the configured number of episodes.
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.RunEpisode(i)
		if err != nil {
			return fmt.Errorf("episode %d: %w", i, err)
		}
		a.traces = append(a.traces, trace)
	}
	return nil
}

// Traces returns the traces collected so far.
func (a *Agent) Traces() []*Trace {
	return a.traces
}

// RunEpisode plays one hand to completion (or to the horizon) and returns
// its trace.
func (a *Agent) RunEpisode(episode int) (*Trace, error) {
	env := a.config.Environment
	policy := a.config.Policy

	observations, _, err := env.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for step := 0; step < a.config.Horizon && !env.Done(); step++ {
		seat := env.ActiveSeat()
		obs := observations[seat]
		legal := env.LegalActions()

		action, ok := policy.NextAction(step, obs, legal)
		if !ok {
			break
		}
		res, err := env.Step(action)
		if err != nil {
			return nil, err
		}
		next := res.Observations[seat]
		reward := res.Rewards[seat]
		policy.Update(step, obs, action, next, reward)

		trace.Append(TraceStep{
			Step:   step,
			Seat:   seat,
			Obs:    obs,
			Action: action,
			Reward: reward,
			Next:   next,
			Done:   res.Done,
			Info:   res.Info,
		})
		observations = res.Observations
		if res.Done {
			trace.FinalRewards = res.Rewards
		}
	}
	policy.UpdateEpisode(episode, trace)
	return trace, nil
}

// SimultaneousAgent drives the simultaneous environment: it fills the
// sentinel action for every passive seat and the policy's choice for the
// active one.
type SimultaneousAgent struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment SimultaneousEnvironment
	// Sentinel is the designated empty action for passive seats.
	Sentinel int
}

// RunEpisode plays one hand through the simultaneous step contract.
func (a *SimultaneousAgent) RunEpisode(episode int) (*Trace, error) {
	env := a.Environment
	policy := a.Policy

	observations, _, err := env.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for step := 0; step < a.Horizon && !env.Done(); step++ {
		seat := env.ActiveSeat()
		obs := observations[seat]
		legal := env.LegalActions()

		action, ok := policy.NextAction(step, obs, legal)
		if !ok {
			break
		}
		actions := make(map[bridge.Seat]int, bridge.NumSeats)
		for _, s := range bridge.Seats {
			actions[s] = a.Sentinel
		}
		actions[seat] = action

		res, err := env.Step(actions)
		if err != nil {
			return nil, err
		}
		next := res.Observations[seat]
		reward := res.Rewards[seat]
		policy.Update(step, obs, action, next, reward)

		trace.Append(TraceStep{
			Step:   step,
			Seat:   seat,
			Obs:    obs,
			Action: action,
			Reward: reward,
			Next:   next,
			Done:   res.Done,
			Info:   res.Info,
		})
		observations = res.Observations
		if res.Done {
			trace.FinalRewards = res.Rewards
		}
	}
	policy.UpdateEpisode(episode, trace)
	return trace, nil
}
