package rxselect

import (
	"encoding/json"
	"reflect"

	"github.com/coregx/rxselect/engine"
)

// Selection is what a match operation hands back: the projection of the
// engine Result chosen by the Selector.
//
// V is *Capture for Match and MatchReplace and []*Capture for MatchAll.
type Selection[V any] struct {
	kind   Kind
	count  int
	value  V
	result *engine.Result[V]
}

// Kind returns the kind of the selector that produced s.
func (s Selection[V]) Kind() Kind {
	return s.kind
}

// Count returns the raw engine signal: 1 or 0 for a single match, the number
// of occurrences for a global match. It is set for every kind.
func (s Selection[V]) Count() int {
	return s.count
}

// Matched reports whether the pattern matched at least once.
func (s Selection[V]) Matched() bool {
	return s.count > 0
}

// Value returns the selected value of a Single selection. An absent key
// yields the zero value (nil).
func (s Selection[V]) Value() V {
	return s.value
}

// Result returns the Result of an Everything or Set selection, nil otherwise.
func (s Selection[V]) Result() *engine.Result[V] {
	return s.result
}

// Interface returns the selection in its dynamic shape: the count for
// Unspecified, the value for Single and the Result otherwise. A nil Single
// value is returned as an untyped nil.
func (s Selection[V]) Interface() any {
	switch s.kind {
	case Unspecified:
		return s.count
	case Single:
		if rv := reflect.ValueOf(&s.value).Elem(); rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Slice {
			if rv.IsNil() {
				return nil
			}
		}
		return s.value
	default:
		return s.result
	}
}

// MarshalJSON encodes the dynamic shape returned by Interface.
func (s Selection[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Interface())
}

// project applies sel to res. The engine Result is never modified; a Set
// selection gets a fresh Result holding only the requested keys.
func project[V any](sel Selector, count int, res *engine.Result[V]) Selection[V] {
	out := Selection[V]{kind: sel.kind, count: count}
	switch sel.kind {
	case Everything:
		out.result = res
	case Single:
		out.value = res.Value(sel.keys[0])
	case Set:
		sub := engine.NewResult[V](len(sel.keys))
		for _, k := range sel.keys {
			sub.Set(k, res.Value(k))
		}
		out.result = sub
	}
	return out
}
