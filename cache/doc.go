// Package cache provides a single-threaded in-memory key-value cache
// with O(1) keyed lookup, ordered traversal, per-entry TTL, pluggable
// eviction policies (LRU by default), and per-entry lifecycle hooks.
//
// Design
//
//   - Concurrency: none. Every public call runs to completion before
//     returning; no operation blocks, suspends, or yields. Callers
//     sharing a cache across goroutines must serialize externally
//     (e.g. with a mutex).
//
//   - Storage: a map[string]*node for lookups and an intrusive doubly
//     linked list for ordering. The front of the list is the oldest
//     entry, the back the newest or most recently touched. All
//     operations are O(1) except full scans.
//
//   - Policies: eviction is pluggable via the policy package. LRU is
//     the default; FIFO and Random are provided. Policies see only the
//     order list, never values, TTLs, or counters.
//
//   - TTL: entries carry an absolute millisecond deadline (0 = never).
//     Expiration is lazy on Get and eager during ScanAndEvict.
//     MaybeScanAndEvict throttles automatic scans to a configured
//     interval.
//
//   - Limits: MaxItems caps the entry count, MaxBytes caps the sum of
//     caller-supplied size contributions. Either is disabled at 0.
//     Capacity is enforced after every successful insert and at the
//     end of every scan, evicting policy-chosen victims until the
//     limits hold or the policy yields no victim.
//
//   - Hooks: optional key/value copy hooks give the cache ownership of
//     its own copies (a nil copy reports allocation failure and aborts
//     the insert); matching release hooks free them. An OnRemove hook
//     observes every removed entry exactly once, with key and value
//     still live, regardless of the removal cause.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Remove/Size signals.
//     By default NoopMetrics is used; plug a Prometheus adapter to
//     export metrics.
//
// Basic usage
//
//	c, _ := cache.New(cache.Options{MaxItems: 10_000})
//	_ = c.InsertTTL([]byte("a"), "1", 1, 0)
//	if v, ok := c.Get([]byte("a")); ok {
//	    _ = v // use value
//	}
//	c.Delete([]byte("a"))
//
// With TTL
//
//	c, _ := cache.New(cache.Options{})
//	_ = c.InsertTTL([]byte("tmp"), "v", 1, 200*time.Millisecond)
//	// 300ms later:
//	_, ok := c.Get([]byte("tmp")) // ok == false (expired)
//
// Using an alternative policy
//
//	c, _ := cache.New(cache.Options{
//	    MaxItems: 1024,
//	    Policy:   fifo.New(),
//	})
//
// Exporting metrics (example Prometheus adapter)
//
//	m := prom.New(nil, "monocache", "demo", nil) // implements Metrics
//	c, _ := cache.New(cache.Options{MaxItems: 1024, Metrics: m})
//
// See cache/options.go for all available Options fields and package
// policy for the Policy/Index interfaces used to implement custom
// strategies.
package cache
