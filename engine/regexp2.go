package engine

import (
	"slices"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

// regexp2Program adapts regexp2, which reports rune positions, to the byte
// index layout of the other backends.
type regexp2Program struct {
	re    *regexp2.Regexp
	names []string
}

func compileRegexp2(pattern string, flags Flags, timeout time.Duration) (program, error) {
	opts, err := flags.regexp2Options()
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	nums := re.GetGroupNumbers()
	last := 0
	if len(nums) > 0 {
		last = slices.Max(nums)
	}
	names := make([]string, last+1)
	for _, n := range nums {
		if name := re.GroupNameFromNumber(n); name != strconv.Itoa(n) {
			names[n] = name
		}
	}
	return &regexp2Program{re: re, names: names}, nil
}

func (p *regexp2Program) subexpNames() []string {
	return p.names
}

// submatchIndex starts the search at byte offset start while the text
// before it stays visible to ^, \b and lookbehind.
func (p *regexp2Program) submatchIndex(s string, start int) ([]int, error) {
	m, err := p.re.FindStringMatchStartingAt(s, start)
	if err != nil || m == nil {
		return nil, err
	}
	return p.indexes(m, runeOffsets(s)), nil
}

func (p *regexp2Program) allSubmatchIndex(s string, start int) ([][]int, error) {
	offsets := runeOffsets(s)
	var out [][]int
	m, err := p.re.FindStringMatchStartingAt(s, start)
	for err == nil && m != nil {
		out = append(out, p.indexes(m, offsets))
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *regexp2Program) indexes(m *regexp2.Match, offsets []int) []int {
	idx := make([]int, 2*len(p.names))
	for i := range p.names {
		g := m.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			idx[2*i], idx[2*i+1] = -1, -1
			continue
		}
		idx[2*i] = offsets[g.Index]
		idx[2*i+1] = offsets[g.Index+g.Length]
	}
	return idx
}

// runeOffsets maps rune positions of s to byte offsets, with one extra entry
// for the end of s.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
