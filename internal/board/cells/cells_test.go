package cells

import (
	"encoding/json"
	"testing"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := New[int]()
	m.Set("c1", 1)
	m.Set("a1", 2)
	m.Set("b2", 1)
	m.Set("a1", 1)

	assert.Equal(t, []string{"c1", "a1", "b2"}, m.Keys())
	v, ok := m.Get("a1")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m.Delete("c1")
	m.Delete("zz")
	assert.Equal(t, []string{"a1", "b2"}, m.Keys())
	assert.False(t, m.Has("c1"))
	assert.Equal(t, 2, m.Len())
}

func TestZeroValueMap(t *testing.T) {
	var m Map[string]
	assert.Equal(t, 0, m.Len())
	m.Set("a1", "x")
	assert.True(t, m.Has("a1"))

	var nilMap *Map[string]
	assert.Equal(t, 0, nilMap.Len())
	assert.False(t, nilMap.Has("a1"))
	assert.Equal(t, 0, nilMap.Clone().Len())
}

func TestCloneIsIndependent(t *testing.T) {
	m := New[int]()
	m.Set("a1", 1)
	clone := m.Clone()
	clone.Set("a1", 2)
	clone.Set("b1", 2)

	v, _ := m.Get("a1")
	assert.Equal(t, 1, v)
	assert.False(t, m.Has("b1"))
	assert.Equal(t, []string{"a1"}, m.Keys())
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := New[int]()
	a.Set("a1", 1)
	a.Set("b1", 2)
	b := New[int]()
	b.Set("b1", 2)
	b.Set("a1", 1)
	assert.True(t, Equal(a, b))

	b.Set("a1", 2)
	assert.False(t, Equal(a, b))
}

func TestJSONRoundTripPreservesOrder(t *testing.T) {
	m := New[int]()
	m.Set("f1", 4)
	m.Set("a2", 0)
	m.Set("c1", 7)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[["f1",4],["a2",0],["c1",7]]`, string(data))

	decoded := New[int]()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, m.Keys(), decoded.Keys())
	assert.True(t, Equal(m, decoded))
}

func TestUnmarshalRejectsMalformedBoards(t *testing.T) {
	inputs := []string{
		`{"a1":1}`,
		`[["a1"]]`,
		`[[1,1]]`,
		`[["a1","x"]]`,
		`[["a1",null]]`,
		`[["a1",1],["a1",2]]`,
		`"a1"`,
	}
	for _, input := range inputs {
		m := New[int]()
		err := json.Unmarshal([]byte(input), m)
		require.Error(t, err, input)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedState), input)
	}
}
