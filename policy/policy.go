package policy

// Node is the minimal contract a cache entry must satisfy for a policy.
// It exposes the key bytes only; values, expiration stamps, and counters
// belong to the cache and are never visible to policies.
type Node interface {
	Key() []byte
}

// Index exposes O(1) list operations a policy can use to read and
// reshape the cache's insertion/access order. The implementation is
// provided by the cache; the front of the list is the oldest entry,
// the back is the newest or most recently touched.
//
// Concurrency: the cache is single-threaded; all Index calls happen
// inside the public operation that triggered them.
// Important: the Index manages only order; the cache owns the
// key->node map and all removal bookkeeping.
type Index interface {
	// Len returns the number of resident nodes.
	Len() int
	// Front returns the oldest node (or nil if empty).
	Front() Node
	// Next returns the node after n in order (or nil at the end).
	Next(n Node) Node
	// MoveToFront demotes the node to the oldest position.
	MoveToFront(n Node)
	// MoveToBack promotes the node to the newest position.
	MoveToBack(n Node)
}

// Policy decides how lookups reshape the order and which entry to
// sacrifice when the cache is over capacity. Both methods are invoked
// by the cache with its own Index.
//
// Semantics:
//   - Touch is called after every successful non-expired lookup and
//     typically promotes the node (e.g. LRU's move-to-back).
//   - Victim returns the node the cache should evict next, or nil when
//     the policy has no choice to offer (e.g. the list is empty).
//     The cache performs the actual removal.
type Policy interface {
	Touch(ix Index, n Node)
	Victim(ix Index) Node
}
