package rl

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Policy selects action indices given an observation and the legal-action
// set. Policies never see internal game state, only the observation and
// the mask, so any agent implementation can stand in for another.
type Policy interface {
	// NextAction picks one of the legal action indices. ok is false when
	// the policy cannot choose.
	NextAction(step int, obs Observation, legal []int) (int, bool)
	// Update observes one transition of the acting seat.
	Update(step int, obs Observation, action int, next Observation, reward float64)
	// UpdateEpisode observes the full trace at the end of an episode.
	UpdateEpisode(episode int, trace *Trace)
	// Reset clears learned state.
	Reset()
}

// RandomPolicy picks uniformly among the legal actions.
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomPolicy) NextAction(step int, obs Observation, legal []int) (int, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	return legal[r.rand.Intn(len(legal))], true
}

func (r *RandomPolicy) Update(int, Observation, int, Observation, float64) {}

func (r *RandomPolicy) UpdateEpisode(int, *Trace) {}

func (r *RandomPolicy) Reset() {}

// SoftMaxPolicy samples actions with Boltzmann weights over learned
// Q-values and updates them with one-step Q-learning.
type SoftMaxPolicy struct {
	qTable      *QTable
	alpha       float64
	gamma       float64
	temperature float64
}

var _ Policy = &SoftMaxPolicy{}

func NewSoftMaxPolicy(alpha, gamma, temperature float64) *SoftMaxPolicy {
	if temperature <= 0 {
		temperature = 1
	}
	return &SoftMaxPolicy{
		qTable:      NewQTable(),
		alpha:       alpha,
		gamma:       gamma,
		temperature: temperature,
	}
}

func (s *SoftMaxPolicy) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMaxPolicy) NextAction(step int, obs Observation, legal []int) (int, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	stateHash := obs.Hash()

	sum := float64(0)
	vals := make([]float64, len(legal))
	for i, a := range legal {
		exp := math.Exp(s.qTable.Get(stateHash, a, 0) / s.temperature)
		vals[i] = exp
		sum += exp
	}
	weights := make([]float64, len(legal))
	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return 0, false
	}
	return legal[i], true
}

func (s *SoftMaxPolicy) Update(step int, obs Observation, action int, next Observation, reward float64) {
	stateHash := obs.Hash()
	curVal := s.qTable.Get(stateHash, action, 0)
	_, nextVal := s.qTable.Max(next.Hash(), 0)
	s.qTable.Set(stateHash, action, (1-s.alpha)*curVal+s.alpha*(reward+s.gamma*nextVal))
}

func (s *SoftMaxPolicy) UpdateEpisode(int, *Trace) {}

// Record dumps the learned values to a file.
func (s *SoftMaxPolicy) Record(path string) error {
	return s.qTable.Record(path)
}

// QLearningPolicy is epsilon-greedy over a QTable, with the Q-values
// replayed backwards over the trace at episode end so terminal rewards
// propagate through the whole hand.
type QLearningPolicy struct {
	qTable  *QTable
	visits  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rand    *rand.Rand
}

var _ Policy = &QLearningPolicy{}

func NewQLearningPolicy(alpha, gamma, epsilon float64, seed uint64) *QLearningPolicy {
	return &QLearningPolicy{
		qTable:  NewQTable(),
		visits:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (q *QLearningPolicy) Reset() {
	q.qTable = NewQTable()
	q.visits = NewQTable()
}

func (q *QLearningPolicy) NextAction(step int, obs Observation, legal []int) (int, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	if q.rand.Float64() < q.epsilon {
		return legal[q.rand.Intn(len(legal))], true
	}
	action, _ := q.qTable.MaxAmong(obs.Hash(), legal, 0)
	if action < 0 {
		return 0, false
	}
	return action, true
}

func (q *QLearningPolicy) Update(int, Observation, int, Observation, float64) {}

func (q *QLearningPolicy) UpdateEpisode(episode int, trace *Trace) {
	for i := trace.Len() - 1; i >= 0; i-- {
		ts, ok := trace.Get(i)
		if !ok {
			continue
		}
		stateHash := ts.Obs.Hash()
		t := q.visits.Get(stateHash, ts.Action, 0) + 1
		q.visits.Set(stateHash, ts.Action, t)

		nextVal := 0.0
		if !ts.Done {
			_, nextVal = q.qTable.Max(ts.Next.Hash(), 0)
		}
		curVal := q.qTable.Get(stateHash, ts.Action, 0)
		q.qTable.Set(stateHash, ts.Action, (1-q.alpha)*curVal+q.alpha*(ts.Reward+q.gamma*nextVal))
	}
}

// Record dumps the learned values to a file.
func (q *QLearningPolicy) Record(path string) error {
	return q.qTable.Record(path)
}
