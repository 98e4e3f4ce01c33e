package engine

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Flags are pattern modifiers handed to the backend.
//
// The selection layer never interprets them; each backend decides how (and
// whether) it honours a bit. Bits a backend cannot express fail compilation
// with ErrUnsupportedFlag.
type Flags uint32

const (
	// IgnoreCase matches letters case-insensitively (PCRE "i").
	IgnoreCase Flags = 1 << iota

	// Multiline lets ^ and $ match at line boundaries (PCRE "m").
	Multiline

	// DotAll lets . match \n (PCRE "s").
	DotAll

	// Ungreedy swaps the meaning of x* and x*? (PCRE "U").
	Ungreedy

	// Extended ignores unescaped whitespace in the pattern (PCRE "x").
	Extended
)

var flagLetters = []struct {
	flag   Flags
	letter byte
}{
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Ungreedy, 'U'},
	{Extended, 'x'},
}

// String returns the modifier letters of f, e.g. "is".
func (f Flags) String() string {
	var sb strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			sb.WriteByte(fl.letter)
		}
	}
	return sb.String()
}

// inlinePrefix renders f as a Go/RE2 inline flag group such as "(?is)".
// Extended has no RE2 spelling.
func (f Flags) inlinePrefix() (string, error) {
	if f&Extended != 0 {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFlag, "x")
	}
	if f == 0 {
		return "", nil
	}
	return "(?" + f.String() + ")", nil
}

// regexp2Options maps f onto regexp2 options. .NET syntax has no ungreedy mode.
func (f Flags) regexp2Options() (regexp2.RegexOptions, error) {
	if f&Ungreedy != 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFlag, "U")
	}
	var opts regexp2.RegexOptions
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}
	if f&Extended != 0 {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts, nil
}

// ParseFlags parses modifier letters ("imsUx") into Flags. The PCRE "u"
// modifier is accepted and ignored since every backend matches UTF-8.
func ParseFlags(letters string) (Flags, error) {
	var f Flags
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c == 'u' {
			continue
		}
		found := false
		for _, fl := range flagLetters {
			if fl.letter == c {
				f |= fl.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown modifier %q", ErrUnsupportedFlag, string(c))
		}
	}
	return f, nil
}

// ParseDelimited splits a PCRE-style delimited pattern such as `~^(a)$~is`
// into its body and modifier flags. The delimiter is the first byte; the
// bracket pairs (), [], {} and <> close with their counterpart.
func ParseDelimited(s string) (string, Flags, error) {
	if len(s) < 2 {
		return "", 0, fmt.Errorf("%w: %q is too short", ErrBadDelimiter, s)
	}
	open := s[0]
	if isAlnum(open) || open == '\\' || open == ' ' {
		return "", 0, fmt.Errorf("%w: %q cannot delimit a pattern", ErrBadDelimiter, string(open))
	}
	closing := open
	switch open {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	case '{':
		closing = '}'
	case '<':
		closing = '>'
	}
	end := strings.LastIndexByte(s[1:], closing)
	if end < 0 {
		return "", 0, fmt.Errorf("%w: no ending delimiter %q", ErrBadDelimiter, string(closing))
	}
	end++
	flags, err := ParseFlags(s[end+1:])
	if err != nil {
		return "", 0, err
	}
	return s[1:end], flags, nil
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
