package cache

import (
	"errors"
	"time"

	"github.com/IvanBrykalov/monocache/internal/util"
	"github.com/IvanBrykalov/monocache/policy"
	"github.com/IvanBrykalov/monocache/policy/lru"
)

var (
	// ErrEmptyKey is returned by Insert for a zero-length key.
	ErrEmptyKey = errors.New("cache: empty key")
	// ErrNegativeSize is returned by Insert for a negative size contribution.
	ErrNegativeSize = errors.New("cache: negative size")
	// ErrDuplicateKey is returned by Insert when the key is already present.
	// Insert never updates; Delete first.
	ErrDuplicateKey = errors.New("cache: duplicate key")
	// ErrCopyFailed is returned by Insert when a configured copy hook
	// reports allocation failure (nil result). The cache is unchanged.
	ErrCopyFailed = errors.New("cache: copy hook failed")
	// ErrClosed is returned by Insert after Close.
	ErrClosed = errors.New("cache: closed")
	// ErrReleaseWithoutCopy is returned by New when a release hook is
	// configured without its matching copy hook.
	ErrReleaseWithoutCopy = errors.New("cache: release hook requires copy hook")
)

// cacheImpl is a single-threaded KV store with TTL and a pluggable
// eviction policy.
type cacheImpl struct {
	ix     *index
	pol    policy.Policy
	opt    Options
	clock  Clock
	closed bool

	// Timestamp of the last throttled scan (ms). Zero until the first
	// MaybeScanAndEvict; explicit ScanAndEvict never updates it.
	lastScanMS uint64
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Policy  -> LRU
//   - nil Metrics -> NoopMetrics
//   - nil Clock   -> wall clock
//
// A release hook without its matching copy hook is rejected: without a
// copy the cache stores caller-owned memory it must not free.
func New(opt Options) (Cache, error) {
	if opt.KeyRelease != nil && opt.KeyCopy == nil {
		return nil, ErrReleaseWithoutCopy
	}
	if opt.ValueRelease != nil && opt.ValueCopy == nil {
		return nil, ErrReleaseWithoutCopy
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	pol := opt.Policy
	if pol == nil {
		pol = lru.New()
	}
	clk := opt.Clock
	if clk == nil {
		clk = wallClock{}
	}
	return &cacheImpl{
		ix:    newIndex(),
		pol:   pol,
		opt:   opt,
		clock: clk,
	}, nil
}

// ---- Cache implementation ----

// Insert adds a new entry; see the Cache interface for the contract.
func (c *cacheImpl) Insert(key []byte, value any, size int64, ttlMS, expiresAtMS uint64) error {
	if c.closed {
		return ErrClosed
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if size < 0 {
		return ErrNegativeSize
	}

	now := c.clock.NowMillis()

	k := key
	if c.opt.KeyCopy != nil {
		if k = c.opt.KeyCopy(key); k == nil {
			return ErrCopyFailed
		}
	}
	v := value
	if c.opt.ValueCopy != nil {
		if v = c.opt.ValueCopy(value); v == nil {
			c.releaseKey(k)
			return ErrCopyFailed
		}
	}

	n := &node{key: k, val: v, size: size, exp: expiration(now, ttlMS, expiresAtMS)}
	if !c.ix.insert(n) {
		// Duplicate key: unwind the copies made for this call.
		c.releaseKey(k)
		c.releaseValue(v)
		return ErrDuplicateKey
	}

	c.enforceLimits()
	return nil
}

// InsertTTL inserts with a relative TTL (truncated to milliseconds;
// non-positive means no expiration).
func (c *cacheImpl) InsertTTL(key []byte, value any, size int64, ttl time.Duration) error {
	return c.Insert(key, value, size, util.Millis(ttl), 0)
}

// InsertAt inserts with an absolute wall-clock deadline, re-based onto
// the cache clock. A deadline at or before the wall clock's now stamps
// the entry as already expired. The conversion carries the skew
// between the wall-clock and cache-clock readings.
func (c *cacheImpl) InsertAt(key []byte, value any, size int64, deadline time.Time) error {
	delta := time.Until(deadline)
	if delta <= 0 {
		return c.Insert(key, value, size, 0, 1)
	}
	exp := util.SaturatingAdd(c.clock.NowMillis(), util.Millis(delta))
	if exp == 0 {
		exp = 1
	}
	return c.Insert(key, value, size, 0, exp)
}

// Get returns the value for key and a presence flag. On hit, the entry
// is promoted according to the policy. Expired entries are removed
// inline and reported as absent.
func (c *cacheImpl) Get(key []byte) (any, bool) {
	if c.closed || len(key) == 0 {
		return nil, false
	}
	n := c.ix.lookup(key)
	if n == nil {
		c.opt.Metrics.Miss()
		return nil, false
	}
	if c.expired(n, c.clock.NowMillis()) {
		c.deleteNode(n, RemoveExpired)
		c.opt.Metrics.Miss()
		return nil, false
	}
	c.pol.Touch(indexOps{c.ix}, n)
	c.opt.Metrics.Hit()
	return n.val, true
}

// Delete removes key if present. Returns true if the entry existed.
func (c *cacheImpl) Delete(key []byte) bool {
	if c.closed || len(key) == 0 {
		return false
	}
	n := c.ix.lookup(key)
	if n == nil {
		return false
	}
	c.deleteNode(n, RemoveDelete)
	return true
}

// ScanAndEvict removes every expired entry, then enforces capacity.
// It does not touch the throttle timestamp; only MaybeScanAndEvict
// owns it.
func (c *cacheImpl) ScanAndEvict() {
	if c.closed {
		return
	}
	c.scanExpired(c.clock.NowMillis())
	c.enforceLimits()
}

// MaybeScanAndEvict runs a scan when the interval is zero, no scan has
// run yet, or the interval has elapsed since the last one. The
// timestamp is updated on every scan regardless of what it removed.
func (c *cacheImpl) MaybeScanAndEvict() {
	if c.closed {
		return
	}
	now := c.clock.NowMillis()
	interval := util.Millis(c.opt.ScanInterval)
	if interval == 0 || c.lastScanMS == 0 || now-c.lastScanMS >= interval {
		c.lastScanMS = now
		c.scanExpired(now)
		c.enforceLimits()
	}
}

// Clear removes all entries; each removal invokes OnRemove exactly once.
func (c *cacheImpl) Clear() {
	for c.ix.front != nil {
		c.deleteNode(c.ix.front, RemoveClear)
	}
}

// Len returns the number of resident entries.
func (c *cacheImpl) Len() int { return c.ix.count }

// Bytes returns the sum of resident size contributions.
func (c *cacheImpl) Bytes() int64 { return c.ix.bytes }

// Close clears the cache and marks it closed. Inserts then return
// ErrClosed; other operations are no-ops.
func (c *cacheImpl) Close() error {
	if c.closed {
		return nil
	}
	c.Clear()
	c.closed = true
	return nil
}

// -------------------- internals --------------------

// expiration computes the absolute deadline for a new entry.
// A relative TTL wins over the absolute stamp; the sum saturates so an
// enormous TTL reads as "effectively never" instead of wrapping.
func expiration(nowMS, ttlMS, expiresAtMS uint64) uint64 {
	if ttlMS > 0 {
		return util.SaturatingAdd(nowMS, ttlMS)
	}
	return expiresAtMS
}

// expired reports whether n's deadline has passed at now.
func (c *cacheImpl) expired(n *node, nowMS uint64) bool {
	return n.exp != 0 && n.exp <= nowMS
}

// deleteNode is the unified removal path for every cause. Ordering is
// load-bearing: the notification hook observes the entry as if still
// live, and key/value remain valid during the hook; releases come last.
func (c *cacheImpl) deleteNode(n *node, reason RemoveReason) {
	key, val, size := n.key, n.val, n.size

	if c.opt.OnRemove != nil {
		c.notifyRemove(key, val, size)
	}

	c.ix.remove(n)

	c.releaseKey(key)
	c.releaseValue(val)

	c.opt.Metrics.Remove(reason)
}

// notifyRemove invokes OnRemove, suppressing panics so the removal
// completes and counters stay consistent.
func (c *cacheImpl) notifyRemove(key []byte, val any, size int64) {
	defer func() { _ = recover() }()
	c.opt.OnRemove(key, val, size)
}

func (c *cacheImpl) releaseKey(k []byte) {
	if c.opt.KeyRelease != nil && k != nil {
		c.opt.KeyRelease(k)
	}
}

func (c *cacheImpl) releaseValue(v any) {
	if c.opt.ValueRelease != nil && v != nil {
		c.opt.ValueRelease(v)
	}
}

// scanExpired walks the list from the front removing expired entries.
// The successor is captured before each removal, so unlinking the
// current node cannot derail the walk even when it empties the list.
func (c *cacheImpl) scanExpired(nowMS uint64) {
	for n := c.ix.front; n != nil; {
		next := n.next
		if c.expired(n, nowMS) {
			c.deleteNode(n, RemoveExpired)
		}
		n = next
	}
}

// enforceLimits evicts policy-chosen victims until both the item and
// byte limits are satisfied or the policy yields no victim. Bounded by
// the resident entry count.
func (c *cacheImpl) enforceLimits() {
	for {
		overItems := c.opt.MaxItems > 0 && c.ix.count > c.opt.MaxItems
		overBytes := c.opt.MaxBytes > 0 && c.ix.bytes > c.opt.MaxBytes
		if !overItems && !overBytes {
			break
		}
		victim := c.pol.Victim(indexOps{c.ix})
		if victim == nil {
			break
		}
		c.deleteNode(victim.(*node), RemoveCapacity)
	}
	c.opt.Metrics.Size(c.ix.count, c.ix.bytes)
}
