// Package engine is the regular-expression collaborator of rxselect.
//
// It compiles patterns with a pluggable backend (coregex, go-re2 or regexp2),
// optionally caches compiled programs, and shapes match data into ordered
// Results keyed by group index and group name:
//
//	e, _ := engine.New(engine.DefaultConfig())
//	ok, res, err := e.Match(`(?P<year>\d{4})-(\d{2})`, "on 2024-05", 0, 0)
//	// ok == true
//	// res keys: 0, "year", 1, 2
//
// The engine performs no selection of its own; see package rxselect.
package engine

import (
	"fmt"
	"strings"

	"github.com/bluele/gcache"
	log "github.com/sirupsen/logrus"
)

// Engine runs matches and substitutions on a configured backend.
//
// An Engine is safe for concurrent use.
type Engine struct {
	config Config
	cache  gcache.Cache
	logger *log.Entry
}

type cacheKey struct {
	pattern string
	flags   Flags
}

// New returns an Engine for config.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	backend, _ := ParseBackend(string(config.Backend))
	config.Backend = backend

	logger := config.Logger
	if logger == nil {
		logger = log.WithField("module", "rxselect")
	}

	e := &Engine{
		config: config,
		logger: logger.WithField("backend", backend),
	}
	if config.Cache.Enabled() {
		e.cache = newCache(config.Cache, e.compile)
	}
	return e, nil
}

// Backend returns the backend patterns are compiled with.
func (e *Engine) Backend() Backend {
	return e.config.Backend
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config {
	return e.config
}

// CacheLen returns the number of cached programs, 0 when caching is off.
func (e *Engine) CacheLen() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.Len(true)
}

func newCache(cfg CacheConfig, compile func(cacheKey) (program, error)) gcache.Cache {
	gc := gcache.New(cfg.Size)
	switch strings.ToUpper(cfg.Strategy) {
	case "LFU":
		gc = gc.LFU()
	case "ARC":
		gc = gc.ARC()
	default:
		gc = gc.LRU()
	}
	if cfg.TTL > 0 {
		gc = gc.Expiration(cfg.TTL)
	}
	return gc.LoaderFunc(func(k any) (any, error) {
		return compile(k.(cacheKey))
	}).Build()
}

func (e *Engine) compile(k cacheKey) (program, error) {
	p, err := compile(e.config, k.pattern, k.flags)
	if err != nil {
		return nil, err
	}
	e.logger.WithFields(log.Fields{
		"pattern": k.pattern,
		"flags":   k.flags.String(),
	}).Debug("compiled pattern")
	return p, nil
}

// program returns the compiled program for pattern and flags, going through
// the cache when one is configured.
func (e *Engine) program(pattern string, flags Flags) (program, error) {
	k := cacheKey{pattern: pattern, flags: flags}
	if e.cache == nil {
		return e.compile(k)
	}
	v, err := e.cache.Get(k)
	if err != nil {
		return nil, err
	}
	e.logger.WithField("pattern", pattern).Trace("cache lookup")
	return v.(program), nil
}

// prepare checks offset and compiles pattern.
func (e *Engine) prepare(pattern, subject string, flags Flags, offset int) (program, error) {
	if offset < 0 || offset > len(subject) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, offset, len(subject))
	}
	return e.program(pattern, flags)
}

// Match runs a single match of pattern against subject, starting the search
// at byte offset.
//
// It reports whether the pattern matched and returns the captures of the
// leftmost match. When nothing matched the Result is empty.
//
// On coregex and re2 the search runs over subject[offset:], so ^ and \b
// treat offset as the start of the text. regexp2 keeps the text before
// offset visible to anchors, word boundaries and lookbehind.
func (e *Engine) Match(pattern, subject string, flags Flags, offset int) (bool, *Result[*Capture], error) {
	p, err := e.prepare(pattern, subject, flags, offset)
	if err != nil {
		return false, nil, err
	}
	m, err := p.submatchIndex(subject, offset)
	if err != nil {
		return false, nil, err
	}

	names := p.subexpNames()
	res := NewResult[*Capture](len(names) + countNamed(names))
	if m == nil {
		return false, res, nil
	}
	for i, name := range names {
		c := capture(subject, m, i)
		if name != "" {
			res.Set(Name(name), c)
		}
		res.Set(Index(i), c)
	}
	return true, res, nil
}

// MatchAll finds every non-overlapping match of pattern in subject from
// byte offset on, with the same offset semantics as Match.
//
// It returns the number of matches and, per group, the captures of each
// match in order. When nothing matched every group key is present with an
// empty sequence.
func (e *Engine) MatchAll(pattern, subject string, flags Flags, offset int) (int, *Result[[]*Capture], error) {
	p, err := e.prepare(pattern, subject, flags, offset)
	if err != nil {
		return 0, nil, err
	}
	ms, err := p.allSubmatchIndex(subject, offset)
	if err != nil {
		return 0, nil, err
	}

	names := p.subexpNames()
	res := NewResult[[]*Capture](len(names) + countNamed(names))
	for i, name := range names {
		caps := make([]*Capture, len(ms))
		for j, m := range ms {
			caps[j] = capture(subject, m, i)
		}
		if name != "" {
			res.Set(Name(name), caps)
		}
		res.Set(Index(i), caps)
	}
	return len(ms), res, nil
}

// Substitute replaces every match of pattern in subject with replacement.
//
// References in replacement are validated against the pattern's groups
// before matching; a dangling or malformed one fails with a *ReplaceError
// wrapping ErrBadReference.
func (e *Engine) Substitute(pattern, replacement, subject string, flags Flags) (string, error) {
	p, err := e.program(pattern, flags)
	if err != nil {
		return "", err
	}
	t, err := parseTemplate(replacement, p.subexpNames())
	if err != nil {
		return "", err
	}
	ms, err := p.allSubmatchIndex(subject, 0)
	if err != nil {
		return "", err
	}
	if len(ms) == 0 {
		return subject, nil
	}

	buf := make([]byte, 0, len(subject))
	last := 0
	for _, m := range ms {
		buf = append(buf, subject[last:m[0]]...)
		buf = t.expand(buf, subject, m)
		last = m[1]
	}
	buf = append(buf, subject[last:]...)
	return string(buf), nil
}

func capture(s string, m []int, group int) *Capture {
	lo := 2 * group
	if lo+1 >= len(m) || m[lo] < 0 {
		return nil
	}
	return &Capture{Text: s[m[lo]:m[lo+1]], Offset: m[lo]}
}

func countNamed(names []string) int {
	n := 0
	for _, name := range names {
		if name != "" {
			n++
		}
	}
	return n
}
