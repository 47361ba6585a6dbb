package cache

// node is an intrusive doubly linked list element owned by the index.
// It stores the key/value alongside list links and the metadata used
// by TTL and size accounting. One heap cell per entry: the value
// envelope (value + expiration) lives inline.
type node struct {
	key []byte
	val any

	// Intrusive list links: front is oldest, back is newest.
	prev *node
	next *node

	// Absolute expiration deadline in milliseconds on the cache clock.
	// Zero means "no TTL".
	exp uint64

	// Caller-supplied size contribution summed into the byte counter.
	// The unit is caller-defined (bytes, credits, 1 per entry, ...).
	size int64
}

// Key returns the node key (part of the policy.Node interface).
// Callers must not mutate the returned bytes.
func (n *node) Key() []byte { return n.key }
