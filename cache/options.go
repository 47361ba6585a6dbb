package cache

import (
	"time"

	"github.com/IvanBrykalov/monocache/policy"
)

// RemoveReason explains why an entry was removed.
type RemoveReason int

const (
	// RemoveDelete — removed explicitly via Delete.
	RemoveDelete RemoveReason = iota
	// RemoveExpired — expired by TTL (lazily on Get or during a scan).
	RemoveExpired
	// RemoveCapacity — evicted to satisfy item/byte limits.
	RemoveCapacity
	// RemoveClear — removed by Clear or Close.
	RemoveClear
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Remove(reason RemoveReason)
	Size(entries int, bytes int64)
}

// Clock provides time in milliseconds; useful for deterministic tests.
// Readings must be non-decreasing over a cache's lifetime.
type Clock interface{ NowMillis() uint64 }

// wallClock is the default Clock backed by time.Now.
type wallClock struct{}

func (wallClock) NowMillis() uint64 { return uint64(time.Now().UnixMilli()) }

// Options configures the cache behavior. Zero values are safe;
// sane defaults are applied in New():
//   - nil Policy  => LRU
//   - nil Metrics => NoopMetrics
//   - nil Clock   => wall clock
type Options struct {
	// Policy is a pluggable eviction policy (LRU/FIFO/Random/...);
	// nil => LRU by default.
	Policy policy.Policy

	// MaxItems is the entry count limit (0 = unlimited).
	MaxItems int
	// MaxBytes limits the sum of per-entry size contributions
	// (0 = unlimited). The unit is whatever callers pass to Insert.
	MaxBytes int64

	// ScanInterval throttles MaybeScanAndEvict: at most one automatic
	// scan per interval. Zero means every call scans.
	ScanInterval time.Duration

	// Key/value ownership. When a copy hook is set, the cache stores
	// and owns the hook's result; a nil result signals allocation
	// failure and aborts the insert. When unset, the cache stores the
	// caller's key/value directly and the caller must keep them valid
	// for the life of the entry — the matching release hook must then
	// be unset too (New rejects a release hook without its copy hook).
	KeyCopy      func(key []byte) []byte
	KeyRelease   func(key []byte)
	ValueCopy    func(value any) any
	ValueRelease func(value any)

	// OnRemove is called exactly once for every removed entry — any
	// cause — before the key and value are released, with both still
	// live. It must not call back into the cache. A panic in the hook
	// is suppressed so the removal always completes.
	OnRemove func(key []byte, value any, size int64)

	// Observability. Keep implementations lightweight; signals fire
	// inside public operations.
	Metrics Metrics

	// Clock overrides the time source (tests). Nil => time.Now().
	Clock Clock
}
