// Package lru implements the LRU eviction policy.
package lru

import "github.com/IvanBrykalov/monocache/policy"

// lru is a classic Least-Recently-Used policy over the cache's order
// list: hits migrate to the back, so the front is always the coldest
// entry and is offered as the victim.
type lru struct{}

// New returns the LRU policy. It is stateless; a single value may be
// shared between caches.
func New() policy.Policy { return lru{} }

// Touch promotes the entry to the most-recently-used position.
func (lru) Touch(ix policy.Index, n policy.Node) { ix.MoveToBack(n) }

// Victim proposes the least-recently-used entry (the list front).
func (lru) Victim(ix policy.Index) policy.Node { return ix.Front() }
