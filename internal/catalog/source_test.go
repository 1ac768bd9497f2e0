package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex_DedupesInOrder(t *testing.T) {
	x := NewIndex([]string{"BTCUSD", "ETHUSD", "BTCUSD", "SUIUSD"})

	assert.Equal(t, 3, x.Len())
	assert.Equal(t, []string{"BTCUSD", "ETHUSD", "SUIUSD"}, x.IDs())
	assert.True(t, x.Contains("ETHUSD"))
	assert.False(t, x.Contains("DOGEUSD"))
}

func TestIndex_Missing(t *testing.T) {
	x := NewIndex([]string{"BTCUSD", "ETHUSD"})

	missing := x.Missing([]string{"FOO", "BTCUSD", "BAR", "FOO"})
	assert.Equal(t, []string{"FOO", "BAR"}, missing)
	assert.Empty(t, x.Missing([]string{"ETHUSD"}))
}

func TestFetch_Static(t *testing.T) {
	src := Static{"A", "B", "A"}

	x, err := Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, x.IDs())

	// The static catalog itself is not mutated by callers.
	ids, err := src.ListAssets(context.Background())
	require.NoError(t, err)
	ids[0] = "Z"
	assert.Equal(t, "A", src[0])
}
