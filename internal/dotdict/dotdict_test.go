package dotdict

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestNestedMappingsAreWrapped(t *testing.T) {
	d := New(Pair{Key: "a", Value: map[string]any{"b": 1}})

	a, err := d.Get("a")
	require.NoError(t, err)
	require.IsType(t, &DotDict{}, a)

	b, err := a.(*DotDict).Get("b")
	require.NoError(t, err)
	assert.Equal(t, 1, b)

	v, err := d.Path("a.b")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDeepNesting(t *testing.T) {
	d := New(Pair{Key: "x", Value: []Pair{
		{Key: "y", Value: yaml.MapSlice{{Key: "z", Value: "deep"}}},
	}})

	v, err := d.Path("x.y.z")
	require.NoError(t, err)
	assert.Equal(t, "deep", v)
}

func TestMissingKey(t *testing.T) {
	d := New(Pair{Key: "a", Value: 1})

	_, err := d.Get("missing")
	var attrErr *AttributeError
	require.True(t, errors.As(err, &attrErr))
	assert.Equal(t, "missing", attrErr.Name)

	err = d.Delete("missing_key")
	require.True(t, errors.As(err, &attrErr))
	assert.Equal(t, "missing_key", attrErr.Name)

	_, err = d.Path("a.b")
	assert.True(t, errors.As(err, &attrErr))

	_, ok := d.Lookup("missing")
	assert.False(t, ok)
}

func TestOrderIsKept(t *testing.T) {
	d := New(
		Pair{Key: "zebra", Value: 1},
		Pair{Key: "apple", Value: 2},
		Pair{Key: "mango", Value: 3},
	)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, d.Keys())

	d.Set("banana", 4)
	d.Set("zebra", 5)
	assert.Equal(t, []string{"zebra", "apple", "mango", "banana"}, d.Keys())

	require.NoError(t, d.Delete("apple"))
	assert.Equal(t, []string{"zebra", "mango", "banana"}, d.Keys())
	assert.Equal(t, 3, d.Len())

	v, err := d.Get("zebra")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestSetDoesNotWrap(t *testing.T) {
	d := New()
	d.Set("m", map[string]any{"k": "v"})

	v, err := d.Get("m")
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, v)
}

func TestZeroValue(t *testing.T) {
	var d DotDict
	assert.Equal(t, 0, d.Len())

	d.Set("b", 1)
	d.Set("a", 2)
	assert.Equal(t, []string{"b", "a"}, d.Keys())

	out, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b": 1, "a": 2}`, string(out))
}

func TestFromMapSortsKeys(t *testing.T) {
	d := FromMap(map[string]any{"b": 2, "a": 1, "c": map[string]any{"d": true}})
	assert.Equal(t, []string{"a", "b", "c"}, d.Keys())

	v, err := d.Path("c.d")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestParseJSONAndMarshal(t *testing.T) {
	src := `{"title": "Release notes", "version": {"number": 4, "by": {"displayName": "Paul"}}, "labels": [{"name": "docs"}]}`

	d, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "version", "labels"}, d.Keys())

	n, err := d.Path("version.number")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	name, err := d.Path("version.by.displayName")
	require.NoError(t, err)
	assert.Equal(t, "Paul", name)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t,
		`{"title":"Release notes","version":{"number":4,"by":{"displayName":"Paul"}},"labels":[{"name":"docs"}]}`,
		string(out))
}

func TestParseYAML(t *testing.T) {
	d, err := Parse([]byte("space:\n  key: DOCS\nlimit: 25\n"))
	require.NoError(t, err)

	key, err := d.Path("space.key")
	require.NoError(t, err)
	assert.Equal(t, "DOCS", key)
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)
}
