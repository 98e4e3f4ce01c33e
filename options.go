package rxselect

import "github.com/coregx/rxselect/engine"

// Option sets one of the optional parameters of a match operation.
//
// Defaults: Unspecified selector, no flags, offset 0.
type Option func(*params)

type params struct {
	selector Selector
	flags    engine.Flags
	offset   int
	err      error
}

func newParams(opts []Option) params {
	var p params
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Select sets the selector from a dynamic value, classified by ParseSelector.
// An unclassifiable value makes the operation fail with ErrInvalidSelector
// before the engine runs.
func Select(v any) Option {
	sel, err := ParseSelector(v)
	return func(p *params) {
		p.selector = sel
		p.err = err
	}
}

// WithSelector sets the selector.
func WithSelector(sel Selector) Option {
	return func(p *params) {
		p.selector = sel
		p.err = nil
	}
}

// WithFlags sets the pattern modifiers passed to the engine.
func WithFlags(flags engine.Flags) Option {
	return func(p *params) {
		p.flags = flags
	}
}

// WithOffset starts the search at byte offset n of the subject. Reported
// capture offsets stay relative to the whole subject.
//
// On the coregex and re2 backends the text before n is cut off, so ^, \A
// and \b treat n as the start of the subject: Match(`^b`, "abba",
// WithOffset(1)) matches. The regexp2 backend keeps that text visible and
// the same call does not match.
func WithOffset(n int) Option {
	return func(p *params) {
		p.offset = n
	}
}
