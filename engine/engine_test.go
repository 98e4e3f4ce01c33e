package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedGroup returns a named capture group in the syntax each backend accepts.
func namedGroup(b Backend, name, body string) string {
	if b == Regexp2 {
		return "(?<" + name + ">" + body + ")"
	}
	return "(?P<" + name + ">" + body + ")"
}

func newEngine(t *testing.T, b Backend) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Backend = b
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func texts(res *Result[*Capture]) map[string]any {
	out := make(map[string]any, res.Len())
	for k, c := range res.All() {
		if c == nil {
			out[k.String()] = nil
			continue
		}
		out[k.String()] = c.Text
	}
	return out
}

func TestMatchResultShape(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			e := newEngine(t, b)
			pattern := "^(first)_(second)_" + namedGroup(b, "third", "third") + "$"

			ok, res, err := e.Match(pattern, "FIRST_second_Third", IgnoreCase, 0)
			require.NoError(t, err)
			assert.True(t, ok)

			assert.Equal(t, []Key{Index(0), Index(1), Index(2), Name("third"), Index(3)}, res.Keys())
			assert.Equal(t, map[string]any{
				"0":     "FIRST_second_Third",
				"1":     "FIRST",
				"2":     "second",
				"third": "Third",
				"3":     "Third",
			}, texts(res))
			assert.Same(t, res.Value(Name("third")), res.Value(Index(3)))
			assert.Equal(t, 13, res.Value(Index(3)).Offset)
		})
	}
}

func TestMatchNoMatch(t *testing.T) {
	e := newEngine(t, Coregex)
	ok, res, err := e.Match(`(a)(b)`, "xyz", 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, res.Len())
}

func TestMatchNonParticipatingGroup(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			e := newEngine(t, b)
			ok, res, err := e.Match(`(a)|(b)`, "b", 0, 0)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 3, res.Len())
			assert.True(t, res.Has(Index(1)))
			assert.Nil(t, res.Value(Index(1)))
			assert.Equal(t, "b", res.Value(Index(2)).Text)
		})
	}
}

func TestMatchOffset(t *testing.T) {
	e := newEngine(t, Coregex)

	ok, res, err := e.Match(`b+`, "abba b", 0, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", res.Value(Index(0)).Text)
	assert.Equal(t, 2, res.Value(Index(0)).Offset)

	ok, _, err = e.Match(`a`, "abba", 0, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOffsetContext(t *testing.T) {
	tests := []struct {
		backend Backend
		visible bool
	}{
		{Coregex, false},
		{RE2, false},
		{Regexp2, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			e := newEngine(t, tt.backend)
			for _, pattern := range []string{`^b`, `\bb`} {
				ok, res, err := e.Match(pattern, "abba", 0, 1)
				require.NoError(t, err)
				assert.Equal(t, !tt.visible, ok, pattern)
				if ok {
					assert.Equal(t, 1, res.Value(Index(0)).Offset)
				}

				n, _, err := e.MatchAll(pattern, "abba", 0, 1)
				require.NoError(t, err)
				if tt.visible {
					assert.Zero(t, n, pattern)
				} else {
					assert.Equal(t, 1, n, pattern)
				}
			}
		})
	}
}

func TestOffsetOutOfRange(t *testing.T) {
	e := newEngine(t, Coregex)
	for _, off := range []int{-1, 5} {
		_, _, err := e.Match(`b`, "abba", 0, off)
		require.ErrorIs(t, err, ErrOffsetOutOfRange)

		_, _, err = e.MatchAll(`b`, "abba", 0, off)
		require.ErrorIs(t, err, ErrOffsetOutOfRange)
	}
}

func TestMatchAll(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			e := newEngine(t, b)

			n, res, err := e.MatchAll(`b`, "abba", 0, 0)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, []Key{Index(0)}, res.Keys())
			assert.Equal(t, []string{"b", "b"}, Texts(res.Value(Index(0))))
			assert.Equal(t, 1, res.Value(Index(0))[0].Offset)
			assert.Equal(t, 2, res.Value(Index(0))[1].Offset)

			n, res, err = e.MatchAll(`b`, "abba", 0, 2)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, []string{"b"}, Texts(res.Value(Index(0))))
			assert.Equal(t, 2, res.Value(Index(0))[0].Offset)
		})
	}
}

func TestMatchAllGroupsAligned(t *testing.T) {
	e := newEngine(t, Coregex)
	n, res, err := e.MatchAll(`(?P<k>\w+)=(\d+)?`, "a=1 b= c=3", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	assert.Equal(t, []Key{Index(0), Name("k"), Index(1), Index(2)}, res.Keys())
	assert.Equal(t, []string{"a", "b", "c"}, Texts(res.Value(Name("k"))))
	digits := res.Value(Index(2))
	require.Len(t, digits, 3)
	assert.Equal(t, "1", digits[0].Text)
	assert.Nil(t, digits[1])
	assert.Equal(t, "3", digits[2].Text)
}

func TestMatchAllNoMatchKeepsKeys(t *testing.T) {
	e := newEngine(t, Coregex)
	n, res, err := e.MatchAll(`(x)(?P<y>y)`, "abba", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []Key{Index(0), Index(1), Name("y"), Index(2)}, res.Keys())
	for _, v := range res.All() {
		assert.NotNil(t, v)
		assert.Empty(t, v)
	}
}

func TestMatchRuneOffsets(t *testing.T) {
	// regexp2 works on runes; offsets must still come back in bytes.
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			e := newEngine(t, b)
			ok, res, err := e.Match(`(é+)(x)`, "aéééx", 0, 0)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "ééé", res.Value(Index(1)).Text)
			assert.Equal(t, 1, res.Value(Index(1)).Offset)
			assert.Equal(t, 7, res.Value(Index(2)).Offset)
		})
	}
}

func TestCompileError(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			e := newEngine(t, b)
			_, _, err := e.Match(`(abc`, "abc", 0, 0)
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, b, ce.Backend)
			assert.Equal(t, `(abc`, ce.Pattern)
		})
	}
}

func TestUnsupportedFlags(t *testing.T) {
	tests := []struct {
		backend Backend
		flags   Flags
	}{
		{Coregex, Extended},
		{RE2, Extended},
		{Regexp2, Ungreedy},
	}
	for _, tt := range tests {
		e := newEngine(t, tt.backend)
		_, _, err := e.Match(`a`, "a", tt.flags, 0)
		if !errors.Is(err, ErrUnsupportedFlag) {
			t.Errorf("%s with %q: got %v, want ErrUnsupportedFlag", tt.backend, tt.flags, err)
		}
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		pattern string
		repl    string
		input   string
		want    string
	}{
		{`^(first)_(second)_(third)$`, "nyuff", "first_second_third", "nyuff"},
		{`b`, "X", "abba", "aXXa"},
		{`(\w+)@(\w+)`, "$2 at $1", "user@host", "host at user"},
		{`(?P<user>\w+)@(\w+)`, "${user}!", "user@host", "user!"},
		{`(a)`, "${1}0", "a", "a0"},
		{`a`, "$$", "aa", "$$"},
		{`x`, "y", "abc", "abc"},
		{`(a)|(b)`, "[$2]", "ab", "[][b]"},
	}

	for _, b := range []Backend{Coregex, RE2} {
		e := newEngine(t, b)
		for _, tt := range tests {
			got, err := e.Substitute(tt.pattern, tt.repl, tt.input, 0)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("%s: Substitute(%q, %q, %q) = %q, want %q",
					b, tt.pattern, tt.repl, tt.input, got, tt.want)
			}
		}
	}
}

func TestSubstituteBadReference(t *testing.T) {
	e := newEngine(t, Coregex)
	for _, repl := range []string{"$9", "${9}", "${nope}", "${}", "${1"} {
		_, err := e.Substitute(`(a)`, repl, "a", 0)
		var re *ReplaceError
		require.ErrorAs(t, err, &re, repl)
		assert.ErrorIs(t, err, ErrBadReference)
		assert.Equal(t, repl, re.Template)
	}
}

func TestCacheSharesPrograms(t *testing.T) {
	for _, strategy := range []string{"", "LRU", "lfu", "ARC"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Cache = CacheConfig{Size: 2, Strategy: strategy}
			e, err := New(cfg)
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				ok, _, err := e.Match(`b`, "abba", 0, 0)
				require.NoError(t, err)
				assert.True(t, ok)
			}
			assert.Equal(t, 1, e.CacheLen())

			_, _, err = e.Match(`b`, "abba", IgnoreCase, 0)
			require.NoError(t, err)
			assert.Equal(t, 2, e.CacheLen())

			_, _, err = e.Match(`(b`, "abba", 0, 0)
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
		})
	}
}

func TestNoCacheByDefault(t *testing.T) {
	e := newEngine(t, Coregex)
	_, _, err := e.Match(`b`, "abba", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, e.CacheLen())
}
