// Package random implements the Random eviction policy.
package random

import (
	"math/rand"

	"github.com/IvanBrykalov/monocache/policy"
)

// Source is a uniform 32-bit random source. Uniformity over the full
// 32-bit range is assumed for victim selection.
type Source func() uint32

// random evicts a uniformly chosen entry. Hits never reshape the list;
// the victim is found by walking rng()%len steps forward from the
// front. The walk is O(n) but runs only on eviction, never on hit.
type random struct {
	rng Source
}

// New returns a Random policy backed by the given source.
// A nil source falls back to math/rand's Uint32.
func New(rng Source) policy.Policy {
	if rng == nil {
		rng = rand.Uint32
	}
	return &random{rng: rng}
}

// Touch is a no-op: access does not affect Random eviction.
func (*random) Touch(policy.Index, policy.Node) {}

// Victim proposes the node at a uniformly random list position,
// or nil if the list is empty.
func (p *random) Victim(ix policy.Index) policy.Node {
	count := ix.Len()
	if count == 0 {
		return nil
	}
	idx := int(p.rng() % uint32(count))
	n := ix.Front()
	for idx > 0 && n != nil {
		n = ix.Next(n)
		idx--
	}
	return n
}
