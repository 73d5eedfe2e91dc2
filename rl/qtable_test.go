package rl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQTableGetSetDefault(t *testing.T) {
	q := NewQTable()
	require.Equal(t, 0.5, q.Get("s", 1, 0.5), "unseen entries take the default")
	q.Set("s", 1, 3)
	require.Equal(t, 3.0, q.Get("s", 1, 0.5))
	require.True(t, q.HasState("s"))
	require.False(t, q.HasState("other"))
}

func TestQTableMax(t *testing.T) {
	q := NewQTable()
	action, val := q.Max("s", -1)
	require.Equal(t, -1, action)
	require.Equal(t, -1.0, val)

	q.Set("s", 2, 1)
	q.Set("s", 7, 4)
	action, val = q.Max("s", 0)
	require.Equal(t, 7, action)
	require.Equal(t, 4.0, val)
}

func TestQTableMaxAmong(t *testing.T) {
	q := NewQTable()
	q.Set("s", 2, 1)
	q.Set("s", 7, 4)
	// the best overall action is excluded from the candidates
	action, val := q.MaxAmong("s", []int{2, 5}, 0)
	require.Equal(t, 2, action)
	require.Equal(t, 1.0, val)
}

func TestObservationHash(t *testing.T) {
	a := Observation{1, 0, 0.5}
	b := Observation{1, 0, 0.5}
	c := Observation{0, 1, 0.5}
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}

func TestObservationClone(t *testing.T) {
	a := Observation{1, 2, 3}
	b := a.Clone()
	b[0] = 9
	require.Equal(t, 1.0, a[0])
}
