// Package rxselect runs a regular expression against a subject and hands
// back only the capture groups the caller asks for.
//
// A selector picks the shape of the answer:
//
//	rxselect.Match(p, s)                          // 1 or 0, no capture data
//	rxselect.Match(p, s, rxselect.Select(""))     // every group
//	rxselect.Match(p, s, rxselect.Select(1))      // group 1
//	rxselect.Match(p, s, rxselect.Select("year")) // group "year"
//	rxselect.Match(p, s, rxselect.Select([]any{1, "year"}))
//
// Absent groups are not an error; they select to nil. Named groups are
// reachable both by name and by position.
//
// MatchAll does the same over every occurrence, and MatchReplace returns the
// selection of the first match while substituting every match in place:
//
//	subject := "first_second_third"
//	third, err := rxselect.MatchReplace(`^(first)_(second)_(third)$`, "nyuff", &subject, rxselect.Select(3))
//	// third.Value().Text == "third", subject == "nyuff"
//
// Every operation exists both as a method of *RX, which carries an engine
// configuration, and as a package-level function using Default().
package rxselect

import (
	"sync"

	"github.com/coregx/rxselect/engine"
)

// Key addresses a capture group by index or name.
type Key = engine.Key

// Capture is the text and offset of one capture group.
type Capture = engine.Capture

// Index returns the key of positional group i.
func Index(i int) Key {
	return engine.Index(i)
}

// Name returns the key of the named group name.
func Name(name string) Key {
	return engine.Name(name)
}

// RX runs match operations on one engine.
//
// An RX is safe for concurrent use.
type RX struct {
	engine *engine.Engine
}

// New returns an RX using an engine built from config.
func New(config engine.Config) (*RX, error) {
	e, err := engine.New(config)
	if err != nil {
		return nil, err
	}
	return &RX{engine: e}, nil
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(config engine.Config) *RX {
	rx, err := New(config)
	if err != nil {
		panic("rxselect: " + err.Error())
	}
	return rx
}

var defaultRX = sync.OnceValue(func() *RX {
	return MustNew(engine.DefaultConfig())
})

// Default returns the RX behind the package-level functions: coregex
// backend, no compile cache.
func Default() *RX {
	return defaultRX()
}

// Engine returns the underlying engine.
func (rx *RX) Engine() *engine.Engine {
	return rx.engine
}

// Match runs a single match of pattern against subject and returns the
// selected part of it.
//
// Without a selector the Selection only carries Count: 1 on a match, 0
// otherwise.
func (rx *RX) Match(pattern, subject string, opts ...Option) (Selection[*Capture], error) {
	p := newParams(opts)
	if p.err != nil {
		return Selection[*Capture]{}, p.err
	}
	return rx.match(pattern, subject, p)
}

func (rx *RX) match(pattern, subject string, p params) (Selection[*Capture], error) {
	ok, res, err := rx.engine.Match(pattern, subject, p.flags, p.offset)
	if err != nil {
		return Selection[*Capture]{}, &EngineError{Op: "match", Pattern: pattern, Err: err}
	}
	count := 0
	if ok {
		count = 1
	}
	return project(p.selector, count, res), nil
}

// MatchAll finds every occurrence of pattern in subject and returns the
// selected part of the result. Selected values hold one capture per
// occurrence.
//
// Without a selector the Selection only carries Count, the number of
// occurrences.
func (rx *RX) MatchAll(pattern, subject string, opts ...Option) (Selection[[]*Capture], error) {
	p := newParams(opts)
	if p.err != nil {
		return Selection[[]*Capture]{}, p.err
	}
	n, res, err := rx.engine.MatchAll(pattern, subject, p.flags, p.offset)
	if err != nil {
		return Selection[[]*Capture]{}, &EngineError{Op: "match all", Pattern: pattern, Err: err}
	}
	return project(p.selector, n, res), nil
}

// MatchReplace selects from the first match of pattern in *subject, then
// replaces every match in *subject with replacement.
//
// The selection always reflects the subject as it was before the
// substitution. If the substitution fails, the selection is returned along
// with the error and *subject is left as it was.
func (rx *RX) MatchReplace(pattern, replacement string, subject *string, opts ...Option) (Selection[*Capture], error) {
	if subject == nil {
		return Selection[*Capture]{}, ErrNilSubject
	}
	p := newParams(opts)
	if p.err != nil {
		return Selection[*Capture]{}, p.err
	}

	sel, err := rx.match(pattern, *subject, p)
	if err != nil {
		return sel, err
	}

	replaced, err := rx.engine.Substitute(pattern, replacement, *subject, p.flags)
	if err != nil {
		return sel, &EngineError{Op: "replace", Pattern: pattern, Err: err}
	}
	*subject = replaced
	return sel, nil
}
