// Package fifo implements the FIFO eviction policy.
package fifo

import "github.com/IvanBrykalov/monocache/policy"

// fifo evicts in pure insertion order. Hits do not reshape the list,
// so the front is always the oldest insertion.
type fifo struct{}

// New returns the FIFO policy. It is stateless; a single value may be
// shared between caches.
func New() policy.Policy { return fifo{} }

// Touch is a no-op: access does not affect FIFO order.
func (fifo) Touch(policy.Index, policy.Node) {}

// Victim proposes the oldest insertion (the list front).
func (fifo) Victim(ix policy.Index) policy.Node { return ix.Front() }
