package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// template is a parsed replacement string. Each part is either literal text
// or a reference to a capture group.
type template struct {
	parts []templatePart
}

type templatePart struct {
	lit   string
	group int // -1 for literal parts
}

// parseTemplate parses repl against the groups described by names
// (names[i] is the name of group i, "" if unnamed). Supported references:
//
//	$0 .. $99    group by number, at most two digits
//	${n}         group by number
//	${name}      group by name
//	$$           a literal $
//
// A $ followed by anything else is kept literally.
func parseTemplate(repl string, names []string) (*template, error) {
	t := &template{}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{lit: lit.String(), group: -1})
			lit.Reset()
		}
	}
	ref := func(group int) {
		flush()
		t.parts = append(t.parts, templatePart{group: group})
	}
	bad := func(pos int, format string, args ...any) error {
		return &ReplaceError{
			Template: repl,
			Pos:      pos,
			Err:      fmt.Errorf("%w: "+format, append([]any{ErrBadReference}, args...)...),
		}
	}

	i := 0
	for i < len(repl) {
		if repl[i] != '$' || i+1 >= len(repl) {
			lit.WriteByte(repl[i])
			i++
			continue
		}

		next := repl[i+1]
		switch {
		case next == '$':
			lit.WriteByte('$')
			i += 2

		case isDigit(next):
			j := i + 2
			if j < len(repl) && isDigit(repl[j]) {
				j++
			}
			n, _ := strconv.Atoi(repl[i+1 : j])
			if n >= len(names) {
				return nil, bad(i, "group %d does not exist", n)
			}
			ref(n)
			i = j

		case next == '{':
			end := strings.IndexByte(repl[i+2:], '}')
			if end < 0 {
				return nil, bad(i, "unterminated ${")
			}
			name := repl[i+2 : i+2+end]
			group, err := resolveGroup(name, names)
			if err != nil {
				return nil, bad(i, "%v", err)
			}
			ref(group)
			i += end + 3

		default:
			lit.WriteByte('$')
			i++
		}
	}
	flush()
	return t, nil
}

func resolveGroup(name string, names []string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty group reference")
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n >= len(names) {
			return 0, fmt.Errorf("group %d does not exist", n)
		}
		return n, nil
	}
	if i := slices.Index(names, name); i > 0 {
		return i, nil
	}
	return 0, fmt.Errorf("group %q does not exist", name)
}

// expand appends the template to dst, replacing references with the text of
// the corresponding submatch of src. Groups that did not participate expand
// to nothing.
func (t *template) expand(dst []byte, src string, match []int) []byte {
	for _, p := range t.parts {
		if p.group < 0 {
			dst = append(dst, p.lit...)
			continue
		}
		lo := 2 * p.group
		if lo+1 < len(match) && match[lo] >= 0 {
			dst = append(dst, src[match[lo]:match[lo+1]]...)
		}
	}
	return dst
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
