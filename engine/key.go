package engine

import "strconv"

// Key addresses a capture group in a Result, either by its position
// (0 is the whole match) or by the name declared in the pattern.
//
// Key is comparable and can be used as a map key.
type Key struct {
	name  string
	index int
	named bool
}

// Index returns the key of the positional group i.
// Negative indexes are valid keys; they are never present in a Result.
func Index(i int) Key {
	return Key{index: i}
}

// Name returns the key of the group declared as (?P<name>...) or (?<name>...).
func Name(name string) Key {
	return Key{name: name, named: true}
}

// IsName reports whether k addresses a named group.
func (k Key) IsName() bool {
	return k.named
}

// Index returns the positional index of k, or -1 for a name key.
func (k Key) Index() int {
	if k.named {
		return -1
	}
	return k.index
}

// Name returns the group name of k, or "" for an index key.
func (k Key) Name() string {
	return k.name
}

// String returns the decimal index or the group name.
func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
