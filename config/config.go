// Package config recognizes cache configuration from JSON or YAML
// bytes and turns it into cache.Options.
package config

import (
	"errors"
	"fmt"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/IvanBrykalov/monocache/cache"
	"github.com/IvanBrykalov/monocache/policy/fifo"
	"github.com/IvanBrykalov/monocache/policy/lru"
	"github.com/IvanBrykalov/monocache/policy/random"
)

// Format identifies the configuration encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Policy names recognized in EvictionPolicy.
const (
	PolicyLRU    = "lru"
	PolicyFIFO   = "fifo"
	PolicyRandom = "random"
)

var (
	// ErrUnsupportedFormat is returned for a Format other than json/yaml.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	// ErrLoadFailed wraps parser errors for malformed input.
	ErrLoadFailed = errors.New("config: load failed")
	// ErrUnknownPolicy is returned for an unrecognized eviction policy name.
	ErrUnknownPolicy = errors.New("config: unknown eviction policy")
)

// Config is the construction-time cache configuration. Zero values
// mean: LRU policy, scan on every MaybeScanAndEvict, no limits.
type Config struct {
	// EvictionPolicy is one of "lru", "fifo", "random".
	// Empty defaults to "lru".
	EvictionPolicy string `koanf:"eviction_policy"`

	// ScanIntervalMS throttles automatic scans (0 = always scan).
	ScanIntervalMS uint64 `koanf:"scan_interval_ms"`

	// MaxItems caps the entry count (0 = unlimited).
	MaxItems int `koanf:"max_items"`

	// MaxBytes caps the total size contribution (0 = unlimited).
	MaxBytes int64 `koanf:"max_bytes"`
}

// Parse loads a Config from raw bytes in the given format.
// Empty data yields the zero Config.
func Parse(data []byte, format Format) (*Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatJSON:
		parser = kjson.Parser()
	case FormatYAML:
		parser = kyaml.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return &cfg, nil
}

// Options maps the Config onto cache.Options, constructing the named
// eviction policy. rng seeds the Random policy and may be nil (the
// policy then uses its default source); it is ignored for other
// policies.
func (c *Config) Options(rng random.Source) (cache.Options, error) {
	opt := cache.Options{
		MaxItems:     c.MaxItems,
		MaxBytes:     c.MaxBytes,
		ScanInterval: time.Duration(c.ScanIntervalMS) * time.Millisecond,
	}

	switch c.EvictionPolicy {
	case PolicyLRU, "":
		opt.Policy = lru.New()
	case PolicyFIFO:
		opt.Policy = fifo.New()
	case PolicyRandom:
		opt.Policy = random.New(rng)
	default:
		return cache.Options{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, c.EvictionPolicy)
	}
	return opt, nil
}

// Build parses data and constructs the cache in one step.
func Build(data []byte, format Format, rng random.Source) (cache.Cache, error) {
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	opt, err := cfg.Options(rng)
	if err != nil {
		return nil, err
	}
	return cache.New(opt)
}
