package engine

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Backend names the regex implementation the engine compiles patterns with.
type Backend string

const (
	// Coregex is github.com/coregx/coregex, the default backend.
	Coregex Backend = "coregex"

	// RE2 is github.com/wasilibs/go-re2.
	RE2 Backend = "re2"

	// Regexp2 is github.com/dlclark/regexp2, a backtracking engine with
	// .NET/PCRE-like syntax.
	//
	// Group numbering follows .NET: unnamed groups are numbered first, then
	// named ones. (?<a>x)(y) yields keys 0, 1, a, 2 with 1 bound to "y",
	// where the other backends yield 0, a, 1, 2 with 1 bound to "x".
	Regexp2 Backend = "regexp2"
)

// Backends lists every supported backend.
var Backends = []Backend{Coregex, RE2, Regexp2}

// ParseBackend returns the backend called name (case-insensitive).
func ParseBackend(name string) (Backend, error) {
	for _, b := range Backends {
		if strings.EqualFold(name, string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// CacheConfig controls the compiled-pattern cache.
//
// The cache is disabled while Size is 0.
type CacheConfig struct {
	// Size is the maximum number of compiled patterns kept.
	Size int `yaml:"size"`

	// Strategy is the eviction policy: LRU, LFU or ARC.
	// Default: LRU
	Strategy string `yaml:"strategy"`

	// TTL expires entries after the given duration. Zero keeps them until evicted.
	TTL time.Duration `yaml:"ttl"`
}

// Enabled reports whether the cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.Size > 0
}

// Config controls engine behavior.
//
// Example:
//
//	config := engine.DefaultConfig()
//	config.Backend = engine.RE2
//	config.Cache.Size = 256
//	e, err := engine.New(config)
type Config struct {
	// Backend selects the regex implementation.
	// Default: Coregex
	Backend Backend `yaml:"backend"`

	// Cache configures compiled-pattern caching.
	// Default: disabled
	Cache CacheConfig `yaml:"cache"`

	// MatchTimeout bounds a single regexp2 match; other backends run in
	// linear time and ignore it.
	// Default: 0 (no timeout)
	MatchTimeout time.Duration `yaml:"match_timeout"`

	// Logger receives compile and cache events at debug and trace level.
	// Default: the logrus standard logger
	Logger *log.Entry `yaml:"-"`
}

// DefaultConfig returns a configuration using coregex with no cache.
func DefaultConfig() Config {
	return Config{
		Backend: Coregex,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return &ConfigError{
			Field:   "Backend",
			Message: fmt.Sprintf("must be one of %v, got %q", Backends, c.Backend),
		}
	}

	if c.MatchTimeout < 0 {
		return &ConfigError{
			Field:   "MatchTimeout",
			Message: "must not be negative",
		}
	}

	if c.Cache.Size < 0 {
		return &ConfigError{
			Field:   "Cache.Size",
			Message: "must not be negative",
		}
	}

	if c.Cache.TTL < 0 {
		return &ConfigError{
			Field:   "Cache.TTL",
			Message: "must not be negative",
		}
	}

	switch strings.ToUpper(c.Cache.Strategy) {
	case "", "LRU", "LFU", "ARC":
	default:
		return &ConfigError{
			Field:   "Cache.Strategy",
			Message: fmt.Sprintf("unknown cache strategy %q", c.Cache.Strategy),
		}
	}

	return nil
}
