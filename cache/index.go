package cache

import "github.com/IvanBrykalov/monocache/policy"

// index couples a key map with an intrusive doubly linked list sharing
// the same node, plus eagerly maintained aggregate counters. The list
// is null-terminated: front is the oldest entry, back the newest.
//
// The index holds the same multiset of nodes in both structures at all
// times; counters never reflect a half-linked state.
type index struct {
	m     map[string]*node
	front *node // oldest
	back  *node // newest / most recently touched
	count int   // number of resident entries
	bytes int64 // sum of per-node size contributions
}

func newIndex() *index {
	return &index{m: make(map[string]*node)}
}

// insert registers n in the map and appends it at the back of the
// list. Returns false if the key is already present (no change).
func (ix *index) insert(n *node) bool {
	k := string(n.key)
	if _, exists := ix.m[k]; exists {
		return false
	}
	ix.m[k] = n
	ix.pushBack(n)
	ix.count++
	ix.bytes += n.size
	return true
}

// lookup returns the node for key, or nil.
func (ix *index) lookup(key []byte) *node {
	return ix.m[string(key)]
}

// remove unlinks n from both structures and updates counters in O(1).
func (ix *index) remove(n *node) {
	delete(ix.m, string(n.key))
	ix.unlink(n)
	ix.count--
	ix.bytes -= n.size
	if ix.bytes < 0 {
		ix.bytes = 0
	}
}

// popFront removes the oldest node, if any.
func (ix *index) popFront() {
	if ix.front != nil {
		ix.remove(ix.front)
	}
}

// popBack removes the newest node, if any.
func (ix *index) popBack() {
	if ix.back != nil {
		ix.remove(ix.back)
	}
}

// moveToFront demotes n to the oldest position in O(1).
func (ix *index) moveToFront(n *node) {
	if ix.front == n {
		return
	}
	ix.unlink(n)
	n.next = ix.front
	if ix.front != nil {
		ix.front.prev = n
	}
	ix.front = n
	if ix.back == nil {
		ix.back = n
	}
}

// moveToBack promotes n to the newest position in O(1).
func (ix *index) moveToBack(n *node) {
	if ix.back == n {
		return
	}
	ix.unlink(n)
	n.prev = ix.back
	if ix.back != nil {
		ix.back.next = n
	}
	ix.back = n
	if ix.front == nil {
		ix.front = n
	}
}

// clear drops all nodes and resets counters.
func (ix *index) clear() {
	ix.m = make(map[string]*node)
	ix.front, ix.back = nil, nil
	ix.count = 0
	ix.bytes = 0
}

// pushBack appends n at the newest position.
func (ix *index) pushBack(n *node) {
	n.prev = ix.back
	n.next = nil
	if ix.back != nil {
		ix.back.next = n
	}
	ix.back = n
	if ix.front == nil {
		ix.front = n
	}
}

// unlink detaches n from the list without touching the map or counters.
func (ix *index) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if ix.front == n {
		ix.front = n.next
	}
	if ix.back == n {
		ix.back = n.prev
	}
	n.prev, n.next = nil, nil
}

// -------------------- policy view --------------------

// indexOps adapts the index to the read/reorder surface policies see.
// Policies never observe the map, counters, or value envelopes.
type indexOps struct{ ix *index }

func (o indexOps) Len() int { return o.ix.count }

func (o indexOps) Front() policy.Node {
	if o.ix.front == nil {
		return nil
	}
	return o.ix.front
}

func (o indexOps) Next(n policy.Node) policy.Node {
	nn := n.(*node).next
	if nn == nil {
		return nil
	}
	return nn
}

func (o indexOps) MoveToFront(n policy.Node) { o.ix.moveToFront(n.(*node)) }
func (o indexOps) MoveToBack(n policy.Node)  { o.ix.moveToBack(n.(*node)) }

var _ policy.Index = indexOps{}
