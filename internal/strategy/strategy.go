// Package strategy decides which LP token pairs a brew run converts.
package strategy

import (
	"github.com/devlongs/spookybrew/pkg/types"
)

// Strategy produces the ordered pair list for a run.
// Pairs returns a fresh copy on every call; two calls without an intervening
// mutation return equal sequences.
type Strategy interface {
	Pairs() []types.PairSpec
	Name() string
	Description() string
}

func clonePairs(pairs []types.PairSpec) []types.PairSpec {
	out := make([]types.PairSpec, len(pairs))
	for i, p := range pairs {
		out[i] = p.Clone()
	}
	return out
}
