package rl

import (
	"github.com/bridgelab/bridge-rl/bridge"
)

// TraceStep is one transition of the acting seat within an episode.
type TraceStep struct {
	Step   int
	Seat   bridge.Seat
	Obs    Observation
	Action int
	Reward float64
	Next   Observation
	Done   bool
	Info   Info
}

// Trace records the transitions of one episode in order, plus the final
// per-seat rewards once the episode terminates.
type Trace struct {
	steps        []TraceStep
	FinalRewards map[bridge.Seat]float64
}

func NewTrace() *Trace {
	return &Trace{steps: make([]TraceStep, 0)}
}

func (t *Trace) Append(step TraceStep) {
	t.steps = append(t.steps, step)
}

func (t *Trace) Len() int {
	return len(t.steps)
}

func (t *Trace) Get(i int) (TraceStep, bool) {
	if i < 0 || i >= len(t.steps) {
		return TraceStep{}, false
	}
	return t.steps[i], true
}

func (t *Trace) Last() (TraceStep, bool) {
	if len(t.steps) == 0 {
		return TraceStep{}, false
	}
	return t.steps[len(t.steps)-1], true
}

// TotalReward sums the rewards collected by one seat over the episode.
func (t *Trace) TotalReward(seat bridge.Seat) float64 {
	total := 0.0
	for _, ts := range t.steps {
		if ts.Seat == seat {
			total += ts.Reward
		}
	}
	return total
}

// Steps returns the recorded transitions; the slice is shared, not copied.
func (t *Trace) Steps() []TraceStep {
	return t.steps
}
