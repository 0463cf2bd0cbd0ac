package templating_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/stache/mustache"
	"github.com/byte4ever/stache/templating"
)

func TestCache_reuses_parsed_template(t *testing.T) {
	t.Parallel()

	var ca templating.Cache

	first, err := ca.Get("{{a}}", "{{", "}}")
	require.NoError(t, err)

	second, err := ca.Get("{{a}}", "{{", "}}")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, ca.Len())
}

func TestCache_keys_on_delimiters(t *testing.T) {
	t.Parallel()

	ca := templating.NewCache()

	curly, err := ca.Get("<%a%>{{a}}", "{{", "}}")
	require.NoError(t, err)

	angle, err := ca.Get("<%a%>{{a}}", "<%", "%>")
	require.NoError(t, err)

	assert.NotSame(t, curly, angle)
	assert.Equal(t, 2, ca.Len())

	got, err := angle.Render(map[string]any{"a": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x{{a}}", got)
}

func TestCache_does_not_store_failures(t *testing.T) {
	t.Parallel()

	ca := templating.NewCache()

	_, err := ca.Get("{{#open}}", "{{", "}}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, mustache.ErrSyntax))
	assert.Zero(t, ca.Len())
}

func TestCache_concurrent_get(t *testing.T) {
	t.Parallel()

	ca := templating.NewCache()

	const workers = 32

	var wg sync.WaitGroup

	got := make([]*mustache.Template, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			tpl, err := ca.Get("{{#xs}}{{.}}{{/xs}}", "{{", "}}")
			if err == nil {
				got[idx] = tpl
			}
		}(i)
	}

	wg.Wait()

	require.NotNil(t, got[0])

	for _, tpl := range got {
		assert.Same(t, got[0], tpl)
	}

	assert.Equal(t, 1, ca.Len())
}
