package rl

import (
	"encoding/json"
	"math"

	"github.com/bridgelab/bridge-rl/util"
)

// QTable maps observation hashes to per-action values.
type QTable struct {
	table map[string]map[int]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[int]float64),
	}
}

func (q *QTable) Get(state string, action int, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[int]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state string, action int, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[int]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Max returns the best known action and value for the state, or def when
// the state has no entries yet.
func (q *QTable) Max(state string, def float64) (int, float64) {
	entries, ok := q.table[state]
	if !ok || len(entries) == 0 {
		return -1, def
	}
	maxAction := -1
	maxVal := math.Inf(-1)
	for a, val := range entries {
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// MaxAmong returns the best action restricted to the given candidates,
// initializing unseen entries to def.
func (q *QTable) MaxAmong(state string, actions []int, def float64) (int, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[int]float64)
	}
	maxAction := -1
	maxVal := math.Inf(-1)
	for _, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		if val := q.table[state][a]; val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// Record dumps the table as JSON for offline inspection.
func (q *QTable) Record(path string) error {
	bs, err := json.Marshal(q.table)
	if err != nil {
		return err
	}
	return util.WriteToFile(path, string(bs))
}
