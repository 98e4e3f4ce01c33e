package rxselect

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/coregx/rxselect/engine"
)

// Kind is the shape of a Selector.
type Kind uint8

const (
	// Unspecified asks for the raw engine signal (match flag or count)
	// instead of any capture data.
	Unspecified Kind = iota

	// Everything asks for the whole Result.
	Everything

	// Single asks for the value of one key.
	Single

	// Set asks for a Result restricted to a list of keys.
	Set
)

func (k Kind) String() string {
	switch k {
	case Unspecified:
		return "unspecified"
	case Everything:
		return "everything"
	case Single:
		return "single"
	case Set:
		return "set"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Selector describes which capture groups a caller wants back.
//
// The zero value is the Unspecified selector.
type Selector struct {
	kind Kind
	keys []engine.Key
}

// All returns the selector for the whole Result.
func All() Selector {
	return Selector{kind: Everything}
}

// One returns the selector for the single key k.
func One(k Key) Selector {
	return Selector{kind: Single, keys: []Key{k}}
}

// Keys returns the selector for the listed keys. Duplicates collapse onto
// their first position; an empty list selects everything.
func Keys(keys ...Key) Selector {
	if len(keys) == 0 {
		return All()
	}
	seen := make(map[Key]struct{}, len(keys))
	uniq := make([]Key, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return Selector{kind: Set, keys: uniq}
}

// Kind returns the shape of s.
func (s Selector) Kind() Kind {
	return s.kind
}

// Keys returns the selected keys: one for Single, the de-duplicated list for
// Set, none otherwise.
func (s Selector) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

func (s Selector) String() string {
	switch s.kind {
	case Single:
		return fmt.Sprintf("single(%s)", s.keys[0])
	case Set:
		return fmt.Sprintf("set%v", s.keys)
	default:
		return s.kind.String()
	}
}

// ParseSelector classifies a dynamically typed selector value:
//
//	nil                      Unspecified
//	"" or an empty slice     Everything
//	int, string or Key       Single
//	non-empty slice/array    Set (elements must be int, string or Key)
//
// A string holding the canonical decimal form of an integer ("2", "-1" but
// not "02") addresses the positional group of that number; any other string,
// the empty one included when it is a list element, addresses a name.
// Unsigned integers above math.MaxInt and any other value fail with a
// *SelectorError.
func ParseSelector(v any) (Selector, error) {
	switch v := v.(type) {
	case nil:
		return Selector{}, nil
	case Selector:
		return v, nil
	case Key:
		return One(v), nil
	case string:
		if v == "" {
			return All(), nil
		}
		return One(keyOf(v)), nil
	}

	rv := reflect.ValueOf(v)
	if k, ok, err := intKey(rv); ok {
		if err != nil {
			return Selector{}, &SelectorError{Value: v, Reason: err.Error()}
		}
		return One(k), nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return All(), nil
		}
		keys := make([]Key, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			k, err := elemKey(rv.Index(i))
			if err != nil {
				return Selector{}, &SelectorError{Value: v, Reason: fmt.Sprintf("element %d: %v", i, err)}
			}
			keys = append(keys, k)
		}
		return Keys(keys...), nil
	}

	return Selector{}, &SelectorError{Value: v, Reason: fmt.Sprintf("unsupported type %T", v)}
}

func elemKey(rv reflect.Value) (Key, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Key{}, fmt.Errorf("nil key")
		}
		rv = rv.Elem()
	}
	if k, ok, err := intKey(rv); ok {
		return k, err
	}
	switch x := rv.Interface().(type) {
	case Key:
		return x, nil
	case string:
		return keyOf(x), nil
	}
	return Key{}, fmt.Errorf("unsupported key type %s", rv.Type())
}

// intKey reports whether rv holds an integer and, if so, its index key.
// Unsigned values that do not fit in an int are an error.
func intKey(rv reflect.Value) (Key, bool, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return engine.Index(int(rv.Int())), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return Key{}, true, fmt.Errorf("index %d overflows int", u)
		}
		return engine.Index(int(u)), true, nil
	}
	return Key{}, false, nil
}

// keyOf turns s into an index key when it is a canonical integer.
func keyOf(s string) Key {
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return engine.Index(n)
	}
	return engine.Name(s)
}
