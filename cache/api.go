package cache

import "time"

// Cache is a single-threaded, in-memory key/value cache interface.
// Methods are NOT safe for concurrent use; callers sharing a cache
// across goroutines must serialize externally.
//
// Typical complexity is O(1): a map lookup plus constant-time list
// adjustments. Scans are O(n) over resident entries.
type Cache interface {
	// Insert adds a new entry. key must be non-empty and size
	// non-negative. ttlMS is a relative TTL in milliseconds;
	// expiresAtMS is an absolute deadline on the cache clock. When
	// both are non-zero the TTL wins; when both are zero the entry
	// never expires. Duplicate keys are rejected (ErrDuplicateKey) —
	// Insert is not an update; Delete first.
	//
	// After a successful insert, capacity enforcement runs and may
	// immediately evict entries, possibly including the one just
	// inserted if the policy picks it.
	Insert(key []byte, value any, size int64, ttlMS, expiresAtMS uint64) error

	// InsertTTL inserts with a relative TTL. Fractional durations are
	// truncated to milliseconds; a non-positive ttl means no
	// expiration.
	InsertTTL(key []byte, value any, size int64, ttl time.Duration) error

	// InsertAt inserts with an absolute wall-clock deadline. The
	// deadline is re-based onto the cache clock by delta; a deadline
	// at or before now produces an entry that is already expired for
	// any future scan. The skew between the wall clock and the cache
	// clock readings is inherent to the conversion.
	InsertAt(key []byte, value any, size int64, deadline time.Time) error

	// Get returns the value for key and a presence flag. On hit, the
	// entry is promoted according to the policy. An expired entry is
	// removed inline and reported as absent.
	Get(key []byte) (any, bool)

	// Delete removes key if present and returns true on success.
	Delete(key []byte) bool

	// ScanAndEvict removes every expired entry, then enforces capacity
	// until the limits hold or the policy yields no victim.
	ScanAndEvict()

	// MaybeScanAndEvict runs ScanAndEvict when the configured scan
	// interval permits.
	MaybeScanAndEvict()

	// Clear removes all entries; each removal invokes OnRemove.
	Clear()

	// Len returns the number of resident entries.
	Len() int

	// Bytes returns the sum of resident size contributions.
	Bytes() int64

	// Close clears the cache and marks it closed. Further inserts
	// return ErrClosed; other operations are no-ops.
	Close() error
}
