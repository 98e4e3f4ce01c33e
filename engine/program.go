package engine

import (
	"fmt"

	"github.com/coregx/coregex"
	"github.com/wasilibs/go-re2"
)

// program is a compiled pattern as the engine consumes it.
//
// Searches start at byte offset start of s. Index slices follow the stdlib
// layout: m[2*i:2*i+2] are the byte bounds of group i in s, -1 when the group
// did not participate.
type program interface {
	subexpNames() []string
	submatchIndex(s string, start int) ([]int, error)
	allSubmatchIndex(s string, start int) ([][]int, error)
}

// stdlike is the stdlib-compatible surface shared by coregex and go-re2.
type stdlike interface {
	SubexpNames() []string
	FindStringSubmatchIndex(s string) []int
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

// stdProgram searches s[start:], so ^, \A and \b see start as the beginning
// of the text. Neither backend takes a start position.
type stdProgram struct {
	re stdlike
}

func (p stdProgram) subexpNames() []string {
	return p.re.SubexpNames()
}

func (p stdProgram) submatchIndex(s string, start int) ([]int, error) {
	return shift(p.re.FindStringSubmatchIndex(s[start:]), start), nil
}

func (p stdProgram) allSubmatchIndex(s string, start int) ([][]int, error) {
	ms := p.re.FindAllStringSubmatchIndex(s[start:], -1)
	for _, m := range ms {
		shift(m, start)
	}
	return ms, nil
}

// shift moves the participating bounds of m by n.
func shift(m []int, n int) []int {
	if n == 0 {
		return m
	}
	for i, v := range m {
		if v >= 0 {
			m[i] = v + n
		}
	}
	return m
}

// compile builds a program for pattern with flags on the configured backend.
func compile(config Config, pattern string, flags Flags) (program, error) {
	var (
		p   program
		err error
	)
	b := config.Backend
	switch b {
	case Coregex, RE2:
		p, err = compileStd(b, pattern, flags)
	case Regexp2:
		p, err = compileRegexp2(pattern, flags, config.MatchTimeout)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, b)
	}
	if err != nil {
		return nil, &CompileError{Backend: b, Pattern: pattern, Err: err}
	}
	return p, nil
}

func compileStd(b Backend, pattern string, flags Flags) (program, error) {
	prefix, err := flags.inlinePrefix()
	if err != nil {
		return nil, err
	}
	expr := prefix + pattern

	if b == RE2 {
		re, err := re2.Compile(expr)
		if err != nil {
			return nil, err
		}
		return stdProgram{re: re}, nil
	}

	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}
	return stdProgram{re: re}, nil
}
