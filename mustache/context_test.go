package mustache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/stache/mustache"
)

func TestContext_lookup_innermost_first(t *testing.T) {
	t.Parallel()

	outer := mustache.NewContext(
		map[string]any{"a": "outer", "b": "only-outer"},
	)
	inner := outer.Push(map[string]any{"a": "inner"})

	got, ok := inner.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "inner", got)

	got, ok = inner.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "only-outer", got)

	// Push leaves the receiver untouched.
	got, ok = outer.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "outer", got)
}

func TestContext_missing_is_absent(t *testing.T) {
	t.Parallel()

	var empty *mustache.Context

	_, ok := empty.Lookup("x")
	assert.False(t, ok)

	_, ok = empty.Lookup(".")
	assert.False(t, ok)

	ctx := mustache.NewContext("scalar", map[string]any{"k": 1})

	_, ok = ctx.Lookup("x")
	assert.False(t, ok)
}

func TestContext_defined_nil_stops_search(t *testing.T) {
	t.Parallel()

	ctx := mustache.NewContext(
		map[string]any{"v": "outer"},
		map[string]any{"v": nil},
	)

	got, ok := ctx.Lookup("v")
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestContext_dot_is_innermost_frame(t *testing.T) {
	t.Parallel()

	ctx := mustache.NewContext(map[string]any{"k": 1}).Push(42)

	got, ok := ctx.Lookup(".")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestContext_interface_keyed_and_pointer_maps(t *testing.T) {
	t.Parallel()

	anyKeys := map[any]any{"name": "x"}
	ptr := &map[string]int{"n": 3}

	ctx := mustache.NewContext(anyKeys, ptr)

	got, ok := ctx.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	got, ok = ctx.Lookup("n")
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	_, ok = mustache.NewContext(map[int]string{1: "a"}).Lookup("1")
	assert.False(t, ok)
}

func TestContext_dotted_path_does_not_fall_back(t *testing.T) {
	t.Parallel()

	ctx := mustache.NewContext(
		map[string]any{"a": map[string]any{"b": "outer"}},
		map[string]any{"a": map[string]any{"c": "inner"}},
	)

	_, ok := ctx.Lookup("a.b")
	assert.False(t, ok)

	got, ok := ctx.Lookup("a.c")
	assert.True(t, ok)
	assert.Equal(t, "inner", got)
}
