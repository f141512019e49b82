package loader

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const catalogHeader = "sku,unit_cost,current_price,competitor_price,min_margin_pct,target_margin_pct,return_rate_pct,inventory_days\n"

func TestCache_HitMissInvalidate(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "catalog.csv", catalogHeader+"A,10,20,22,20,40,2,45\n")

	cache := NewCache()

	metrics, hit, err := cache.LoadMerged(catalog, "")
	require.NoError(t, err)
	require.False(t, hit)
	require.Len(t, metrics, 1)

	metrics, hit, err = cache.LoadMerged(catalog, "")
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, metrics, 1)

	cache.Invalidate()
	_, hit, err = cache.LoadMerged(catalog, "")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCache_FileChangeMisses(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "catalog.csv", catalogHeader+"A,10,20,22,20,40,2,45\n")

	cache := NewCache()
	_, _, err := cache.LoadMerged(catalog, "")
	require.NoError(t, err)

	// Rewrite with different content and a bumped mtime.
	require.NoError(t, os.WriteFile(catalog, []byte(catalogHeader+"A,10,21,22,20,40,2,45\nB,5,9,10,20,40,1,30\n"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(catalog, future, future))

	metrics, hit, err := cache.LoadMerged(catalog, "")
	require.NoError(t, err)
	require.False(t, hit)
	require.Len(t, metrics, 2)
	require.Equal(t, 21.0, metrics[0].CurrentPrice)
}

func TestCache_GetReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "catalog.csv", catalogHeader+"A,10,20,22,20,40,2,45\n")

	cache := NewCache()
	first, _, err := cache.LoadMerged(catalog, "")
	require.NoError(t, err)

	// Mutating the returned slice must not poison the cache.
	first[0].CurrentPrice = 999

	again, hit, err := cache.LoadMerged(catalog, "")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 20.0, again[0].CurrentPrice)
}
