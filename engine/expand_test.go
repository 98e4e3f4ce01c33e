package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	names := []string{"", "", "user", ""}
	// src "ab@cd" with groups 1="ab", 2="user"="cd", 3 unmatched
	src := "ab@cd"
	match := []int{0, 5, 0, 2, 3, 5, -1, -1}

	tests := []struct {
		repl string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"$0", "ab@cd"},
		{"$1-$2", "ab-cd"},
		{"${user}", "cd"},
		{"${2}x", "cdx"},
		{"$3", ""},
		{"$$1", "$1"},
		{"cost: $", "cost: $"},
		{"$x", "$x"},
		{"$01", "ab"},
	}
	for _, tt := range tests {
		tmpl, err := parseTemplate(tt.repl, names)
		require.NoError(t, err, tt.repl)
		got := string(tmpl.expand(nil, src, match))
		if got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.repl, got, tt.want)
		}
	}
}

func TestParseTemplateErrors(t *testing.T) {
	names := []string{"", "name"}
	tests := []struct {
		repl string
		pos  int
	}{
		{"$2", 0},
		{"ab$12", 2},
		{"${2}", 0},
		{"${-1}", 0},
		{"x${other}", 1},
		{"${}", 0},
		{"${name", 0},
	}
	for _, tt := range tests {
		_, err := parseTemplate(tt.repl, names)
		var re *ReplaceError
		require.ErrorAs(t, err, &re, tt.repl)
		assert.ErrorIs(t, err, ErrBadReference, tt.repl)
		assert.Equal(t, tt.pos, re.Pos, tt.repl)
	}
}
