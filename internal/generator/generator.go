// Package generator builds asset configuration files.
//
// A run resolves the requested asset set against the catalog (explicit ids
// first, then a random sample of the rest), derives every encoded id and
// writes the result as YAML.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"asset-conf/internal/assetid"
	"asset-conf/internal/catalog"
	"asset-conf/internal/config"
	"asset-conf/internal/errs"
	"asset-conf/internal/logger"

	"github.com/samber/lo"
)

// Generator resolves requests against Source and draws random assets from Rand.
type Generator struct {
	Source catalog.Source
	Rand   RandomSource
}

// New returns a Generator. A nil rnd means an unseeded source.
func New(src catalog.Source, rnd RandomSource) *Generator {
	if rnd == nil {
		rnd = NewUnseededSource()
	}
	return &Generator{Source: src, Rand: rnd}
}

// Run validates req, generates the document and writes it to req.OutputPath.
// The output location is checked before the catalog is fetched.
func (g *Generator) Run(ctx context.Context, req Request) (*Document, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	path, err := config.ExpandPath(req.OutputPath)
	if err != nil {
		return nil, "", errs.Invalid("%v", err)
	}
	if err := checkOutputDir(path); err != nil {
		return nil, "", err
	}

	doc, err := g.Generate(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if err := Write(doc, path); err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

// Generate resolves the asset set for req and builds the document.
func (g *Generator) Generate(ctx context.Context, req Request) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids, err := g.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	fallback, threshold := req.fallbackPeriod(), req.percentChange()
	doc := &Document{
		Entries: lo.Map(ids, func(id string, _ int) Entry {
			return Entry{
				AssetID:                id,
				FallbackPeriodSec:      fallback,
				PercentChangeThreshold: threshold,
				EncodedAssetID:         assetid.Encode(id),
			}
		}),
	}
	logger.Debug("[DEBUG] Built %d entries (fallback=%ds threshold=%v)\n", len(doc.Entries), fallback, threshold)
	return doc, nil
}

// resolve returns explicit ids in the order given followed by the random draw.
func (g *Generator) resolve(ctx context.Context, req Request) ([]string, error) {
	idx, err := catalog.Fetch(ctx, g.Source)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Catalog has %d assets\n", idx.Len())

	explicit := normalizeIDs(req.ExplicitIDs)
	if err := errs.NotFound(idx.Missing(explicit)); err != nil {
		return nil, err
	}

	if req.RandomCount == 0 {
		return explicit, nil
	}

	pool := lo.Without(idx.IDs(), explicit...)
	if req.RandomCount > len(pool) {
		return nil, errs.Invalid("requested %d random assets but only %d are available", req.RandomCount, len(pool))
	}

	drawn := sample(g.Rand, pool, req.RandomCount)
	logger.Debug("[DEBUG] Randomly selected: %v\n", drawn)
	return append(explicit, drawn...), nil
}

// checkOutputDir fails unless the parent directory of path exists.
func checkOutputDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: output directory does not exist: %s", errs.ErrIO, dir)
	case err != nil:
		return fmt.Errorf("%w: checking output directory: %w", errs.ErrIO, err)
	case !info.IsDir():
		return fmt.Errorf("%w: not a directory: %s", errs.ErrIO, dir)
	}
	return nil
}

// Write renders doc and writes it to path, replacing any existing file.
func Write(doc *Document, path string) error {
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return fmt.Errorf("failed to serialize config to YAML: %w", err)
	}

	logger.Debug("[DEBUG] Writing config to %s:\n%s", path, buf.String())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", errs.ErrIO, path, err)
	}
	return nil
}
