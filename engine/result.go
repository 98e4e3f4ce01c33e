package engine

import (
	"bytes"
	"encoding/json"
	"iter"
)

// Capture is the text matched by one capture group.
//
// A nil *Capture stands for a group that did not participate in the match.
type Capture struct {
	// Text is the matched substring.
	Text string

	// Offset is the byte offset of Text in the full subject, including any
	// search offset the caller passed.
	Offset int
}

// String returns the captured text. A nil capture yields "".
func (c *Capture) String() string {
	if c == nil {
		return ""
	}
	return c.Text
}

// MarshalJSON encodes the capture as its text.
func (c *Capture) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Text)
}

// Texts returns the text of every capture in cs; nil captures yield "".
func Texts(cs []*Capture) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

// Result is an ordered mapping from capture group keys to values.
//
// For a single match V is *Capture; for a global match V is []*Capture with
// one entry per occurrence. The engine emits, for every group in ascending
// order, the name key of a named group immediately followed by its index key,
// both bound to the same value.
//
// The zero value is an empty Result ready to use.
type Result[V any] struct {
	keys   []Key
	values map[Key]V
}

// NewResult returns an empty Result with room for n keys.
func NewResult[V any](n int) *Result[V] {
	return &Result[V]{
		keys:   make([]Key, 0, n),
		values: make(map[Key]V, n),
	}
}

// Set binds k to v. A new key is appended; an existing key keeps its position.
func (r *Result[V]) Set(k Key, v V) {
	if r.values == nil {
		r.values = make(map[Key]V)
	}
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

// Get returns the value bound to k and whether k is present.
func (r *Result[V]) Get(k Key) (V, bool) {
	if r == nil {
		var zero V
		return zero, false
	}
	v, ok := r.values[k]
	return v, ok
}

// Value returns the value bound to k, or the zero value when k is absent.
func (r *Result[V]) Value(k Key) V {
	v, _ := r.Get(k)
	return v
}

// Has reports whether k is present.
func (r *Result[V]) Has(k Key) bool {
	_, ok := r.Get(k)
	return ok
}

// Len returns the number of keys.
func (r *Result[V]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns a copy of the keys in order.
func (r *Result[V]) Keys() []Key {
	if r == nil {
		return nil
	}
	return append([]Key(nil), r.keys...)
}

// All iterates over the keys and values in order.
func (r *Result[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		if r == nil {
			return
		}
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the Result as a JSON object, keeping key order.
func (r *Result[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k.String())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
