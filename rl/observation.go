package rl

import (
	"strconv"
	"strings"
)

// Observation is a fixed-length numeric view of the game for one seat.
// The shape never varies within an environment; absent information is
// encoded as zeros.
type Observation []float64

// Hash returns a deterministic key for tabular policies. Observations are
// sparse 0/1 vectors, so the key lists the non-zero slots.
func (o Observation) Hash() string {
	var b strings.Builder
	for i, v := range o {
		if v == 0 {
			continue
		}
		b.WriteString(strconv.Itoa(i))
		if v != 1 {
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte(',')
	}
	return b.String()
}

// Clone returns an independent copy of the observation.
func (o Observation) Clone() Observation {
	out := make(Observation, len(o))
	copy(out, o)
	return out
}
