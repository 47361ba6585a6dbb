// Command bench runs a synthetic single-threaded workload against the
// cache and exposes an optional Prometheus endpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/IvanBrykalov/monocache/cache"
	pmet "github.com/IvanBrykalov/monocache/metrics/prom"
	"github.com/IvanBrykalov/monocache/policy/fifo"
	"github.com/IvanBrykalov/monocache/policy/random"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		maxItems = flag.Int("max_items", 100_000, "entry count limit (0 = unlimited)")
		maxBytes = flag.Int64("max_bytes", 0, "total size limit (0 = unlimited)")
		policyNm = flag.String("policy", "lru", "eviction policy: lru | fifo | random")

		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		ttl      = flag.Duration("ttl", 0, "per-entry TTL (0 = none)")
		scanEach = flag.Int("scan_every", 1024, "run MaybeScanAndEvict every N ops (0 = never)")

		keys  = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	)
	flag.Parse()

	// ---- Prometheus metrics (on DefaultServeMux) ----
	var metrics cache.Metrics = cache.NoopMetrics{}
	if *metricsAddr != "" {
		metrics = pmet.New(nil, "monocache", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	// ---- Build cache ----
	r := rand.New(rand.NewSource(*seed))
	opt := cache.Options{
		MaxItems: *maxItems,
		MaxBytes: *maxBytes,
		Metrics:  metrics,
	}
	switch *policyNm {
	case "lru":
		// nil => LRU by default
	case "fifo":
		opt.Policy = fifo.New()
	case "random":
		opt.Policy = random.New(func() uint32 { return r.Uint32() })
	default:
		log.Fatalf("unknown policy: %q (use lru, fifo or random)", *policyNm)
	}
	c, err := cache.New(opt)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	// ---- Workload: one goroutine, the cache is single-threaded ----
	zipf := rand.NewZipf(r, *zipfS, *zipfV, uint64(*keys-1))
	keyByZipf := func() []byte {
		return []byte("k:" + strconv.FormatUint(zipf.Uint64(), 10))
	}

	var reads, writes, hits, misses, dups, total uint64
	deadline := time.Now().Add(*duration)
	start := time.Now()
	for time.Now().Before(deadline) {
		total++
		if int(r.Int31n(100)) < *readPct {
			reads++
			if _, ok := c.Get(keyByZipf()); ok {
				hits++
			} else {
				misses++
			}
		} else {
			writes++
			k := keyByZipf()
			if err := c.InsertTTL(k, "v"+strconv.Itoa(r.Int()), 1, *ttl); err != nil {
				dups++
			}
		}
		if *scanEach > 0 && total%uint64(*scanEach) == 0 {
			c.MaybeScanAndEvict()
		}
	}
	elapsed := time.Since(start)

	// ---- Report ----
	hitRate := 0.0
	if reads > 0 {
		hitRate = float64(hits) / float64(reads) * 100
	}
	fmt.Printf("policy=%s max_items=%d max_bytes=%d keys=%d ttl=%v dur=%v seed=%d\n",
		*policyNm, *maxItems, *maxBytes, *keys, *ttl, elapsed, *seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  dup-inserts=%d\n",
		total, float64(total)/elapsed.Seconds(), reads, writes, dups)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hits, misses, hitRate)
	fmt.Printf("Len()=%d Bytes()=%d\n", c.Len(), c.Bytes())
}
