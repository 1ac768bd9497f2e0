package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asset-conf/internal/assetid"
	"asset-conf/internal/catalog"
	"asset-conf/internal/errs"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = catalog.Static{"BTCUSD", "ETHUSD", "SUIUSD", "SOLUSD", "ADAUSD", "XRPUSD", "DOGEUSD", "AVAXUSD"}

// firstRand always picks the first remaining element, so a draw is the
// head of the pool in catalog order.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

type countingSource struct {
	catalog.Static
	calls int
}

func (c *countingSource) ListAssets(ctx context.Context) ([]string, error) {
	c.calls++
	return c.Static.ListAssets(ctx)
}

func TestGenerate_ExplicitDefaults(t *testing.T) {
	g := New(testCatalog, firstRand{})

	doc, err := g.Generate(context.Background(), Request{
		ExplicitIDs: SplitIDs("BTCUSD,ETHUSD,SUIUSD"),
		OutputPath:  "config.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"BTCUSD", "ETHUSD", "SUIUSD"}, doc.IDs())
	for _, e := range doc.Entries {
		assert.Equal(t, 60, e.FallbackPeriodSec)
		assert.Equal(t, 1.0, e.PercentChangeThreshold)
		assert.Equal(t, assetid.Encode(e.AssetID), e.EncodedAssetID)
	}
}

func TestGenerate_Overrides(t *testing.T) {
	fallback, threshold := 30, 0.5
	g := New(testCatalog, firstRand{})

	doc, err := g.Generate(context.Background(), Request{
		ExplicitIDs:            []string{"BTCUSD"},
		FallbackPeriodSec:      &fallback,
		PercentChangeThreshold: &threshold,
		OutputPath:             "out.yml",
	})
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, 30, doc.Entries[0].FallbackPeriodSec)
	assert.Equal(t, 0.5, doc.Entries[0].PercentChangeThreshold)
}

func TestGenerate_DuplicatesCollapse(t *testing.T) {
	g := New(testCatalog, firstRand{})

	doc, err := g.Generate(context.Background(), Request{
		ExplicitIDs: []string{"ETHUSD", " BTCUSD", "ETHUSD", ""},
		OutputPath:  "config.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ETHUSD", "BTCUSD"}, doc.IDs())
}

func TestGenerate_RandomCount(t *testing.T) {
	g := New(testCatalog, NewRandomSource(7))

	doc, err := g.Generate(context.Background(), Request{RandomCount: 5, OutputPath: "config.yaml"})
	require.NoError(t, err)

	ids := doc.IDs()
	assert.Len(t, ids, 5)
	assert.Len(t, lo.Uniq(ids), 5)
	for _, id := range ids {
		assert.Contains(t, []string(testCatalog), id)
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	req := Request{RandomCount: 4, OutputPath: "config.yaml"}

	a, err := New(testCatalog, NewRandomSource(42)).Generate(context.Background(), req)
	require.NoError(t, err)
	b, err := New(testCatalog, NewRandomSource(42)).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.IDs(), b.IDs())
}

func TestGenerate_ExplicitAndRandomUnion(t *testing.T) {
	g := New(testCatalog, firstRand{})

	doc, err := g.Generate(context.Background(), Request{
		ExplicitIDs: []string{"ETHUSD", "BTCUSD"},
		RandomCount: 3,
		OutputPath:  "config.yaml",
	})
	require.NoError(t, err)

	// Explicit ids first, then the draw from the catalog minus explicit ids.
	assert.Equal(t, []string{"ETHUSD", "BTCUSD", "SUIUSD", "SOLUSD", "ADAUSD"}, doc.IDs())
}

func TestGenerate_UnionProperty(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		explicit := []string{"DOGEUSD", "BTCUSD"}
		doc, err := New(testCatalog, NewRandomSource(seed)).Generate(context.Background(), Request{
			ExplicitIDs: explicit,
			RandomCount: 4,
			OutputPath:  "config.yaml",
		})
		require.NoError(t, err)

		ids := doc.IDs()
		require.Len(t, ids, 6)
		assert.Len(t, lo.Uniq(ids), 6)
		assert.Equal(t, explicit, ids[:2])
		assert.Empty(t, lo.Intersect(explicit, ids[2:]))
	}
}

func TestGenerate_RandomShortfall(t *testing.T) {
	g := New(catalog.Static{"BTCUSD", "ETHUSD"}, firstRand{})

	_, err := g.Generate(context.Background(), Request{RandomCount: 3, OutputPath: "config.yaml"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "only 2 are available")

	// Explicit ids shrink the pool.
	_, err = g.Generate(context.Background(), Request{
		ExplicitIDs: []string{"BTCUSD"},
		RandomCount: 2,
		OutputPath:  "config.yaml",
	})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestGenerate_UnknownExplicit(t *testing.T) {
	g := New(testCatalog, firstRand{})

	_, err := g.Generate(context.Background(), Request{
		ExplicitIDs: []string{"BTCUSD", "NOPE", "ALSONOPE"},
		OutputPath:  "config.yaml",
	})
	require.ErrorIs(t, err, errs.ErrAssetNotFound)

	var nf *errs.AssetNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"NOPE", "ALSONOPE"}, nf.IDs)
}

func TestGenerate_SingleCatalogFetch(t *testing.T) {
	src := &countingSource{Static: testCatalog}

	_, err := New(src, firstRand{}).Generate(context.Background(), Request{
		ExplicitIDs: []string{"BTCUSD"},
		RandomCount: 2,
		OutputPath:  "config.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestRequest_Validate(t *testing.T) {
	neg, zero := -1.0, 0
	tests := []struct {
		name string
		req  Request
	}{
		{"no assets", Request{OutputPath: "config.yaml"}},
		{"only blanks", Request{ExplicitIDs: []string{" ", ""}, OutputPath: "config.yaml"}},
		{"no output", Request{ExplicitIDs: []string{"BTCUSD"}}},
		{"bad extension", Request{ExplicitIDs: []string{"BTCUSD"}, OutputPath: "config.json"}},
		{"negative random", Request{RandomCount: -2, OutputPath: "config.yaml"}},
		{"zero fallback", Request{RandomCount: 1, FallbackPeriodSec: &zero, OutputPath: "config.yaml"}},
		{"negative threshold", Request{RandomCount: 1, PercentChangeThreshold: &neg, OutputPath: "config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.req.Validate(), errs.ErrInvalidArgument)
		})
	}

	require.NoError(t, Request{RandomCount: 1, OutputPath: "OUT.YML"}.Validate())
}

func TestRun_WritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale: true\n"), 0o644))

	doc, written, err := New(testCatalog, firstRand{}).Run(context.Background(), Request{
		ExplicitIDs: []string{"SUIUSD", "BTCUSD"},
		OutputPath:  path,
	})
	require.NoError(t, err)
	assert.Equal(t, path, written)
	assert.Len(t, doc.Entries, 2)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "assets:\n" +
		"  SUIUSD:\n" +
		"    asset_id: SUIUSD\n" +
		"    fallback_period_sec: 60\n" +
		"    percent_change_threshold: 1.0\n" +
		"    encoded_asset_id: \"" + assetid.Encode("SUIUSD") + "\"\n" +
		"  BTCUSD:\n" +
		"    asset_id: BTCUSD\n" +
		"    fallback_period_sec: 60\n" +
		"    percent_change_threshold: 1.0\n" +
		"    encoded_asset_id: \"" + assetid.Encode("BTCUSD") + "\"\n"
	assert.Equal(t, want, string(raw))
	assert.NotContains(t, string(raw), "stale")
}

func TestRun_MissingDirectory(t *testing.T) {
	src := &countingSource{Static: testCatalog}
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")

	_, _, err := New(src, firstRand{}).Run(context.Background(), Request{RandomCount: 1, OutputPath: path})
	require.ErrorIs(t, err, errs.ErrIO)
	assert.Zero(t, src.calls, "catalog must not be fetched when the output cannot be written")
}

func TestRun_InvalidBeforeFetch(t *testing.T) {
	src := &countingSource{Static: testCatalog}

	_, _, err := New(src, firstRand{}).Run(context.Background(), Request{OutputPath: "config.yaml"})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	assert.Zero(t, src.calls)
}

func TestWrite_Unwritable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the write fail.
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := Write(&Document{}, path)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"BTCUSD", "ETHUSD"}, SplitIDs(" BTCUSD ,ETHUSD,,BTCUSD"))
	assert.Empty(t, SplitIDs(""))
}

func TestSample_DistinctAndBounded(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	got := sample(NewRandomSource(1), pool, 4)

	assert.ElementsMatch(t, pool, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, pool, "pool must not be reordered")
	assert.True(t, strings.Join(sample(firstRand{}, pool, 2), ",") == "a,b")
}
