package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultKeepsFirstPosition(t *testing.T) {
	var r Result[int]
	r.Set(Index(9), 1)
	r.Set(Name("beka"), 2)
	r.Set(Index(9), 3)

	assert.Equal(t, []Key{Index(9), Name("beka")}, r.Keys())
	assert.Equal(t, 3, r.Value(Index(9)))
	assert.Equal(t, 2, r.Len())

	_, ok := r.Get(Index(1))
	assert.False(t, ok)
}

func TestNilResult(t *testing.T) {
	var r *Result[*Capture]
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Value(Index(0)))
	assert.False(t, r.Has(Index(0)))
	for range r.All() {
		t.Fatal("nil result yielded a value")
	}
}

func TestKeys(t *testing.T) {
	assert.NotEqual(t, Index(3), Name("3"))
	assert.Equal(t, "3", Index(3).String())
	assert.Equal(t, "third", Name("third").String())
	assert.Equal(t, -1, Name("third").Index())
	assert.True(t, Name("x").IsName())
	assert.False(t, Index(0).IsName())
}

func TestResultJSON(t *testing.T) {
	r := NewResult[*Capture](4)
	r.Set(Index(0), &Capture{Text: "ab"})
	r.Set(Name("x"), &Capture{Text: "b", Offset: 1})
	r.Set(Index(1), r.Value(Name("x")))
	r.Set(Index(2), nil)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"0":"ab","x":"b","1":"b","2":null}`, string(out))

	all := NewResult[[]*Capture](1)
	all.Set(Index(0), []*Capture{{Text: "b"}, nil})
	all.Set(Index(1), []*Capture{})
	out, err = json.Marshal(all)
	require.NoError(t, err)
	assert.Equal(t, `{"0":["b",null],"1":[]}`, string(out))
}
