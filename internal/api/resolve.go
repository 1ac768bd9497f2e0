package api

import (
	"context"

	"asset-conf/internal/assetid"
	"asset-conf/internal/catalog"
	"asset-conf/internal/errs"

	"github.com/samber/lo"
)

// EncodedAsset is the per-id result of EncodeAssets.
type EncodedAsset struct {
	ID      string
	Encoded string
	Found   bool
}

// Availability is the per-id result of CheckAssets.
type Availability struct {
	ID        string
	Available bool
}

// EncodeAssets resolves the encoded id of every requested asset from one
// fetch of src.
//
// Results come back in request order with duplicates dropped. Unknown ids
// are reported with Found=false, and the returned error is then an
// *errs.AssetNotFoundError naming all of them; the results are still valid.
func EncodeAssets(ctx context.Context, src catalog.Source, ids []string) ([]EncodedAsset, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil, errs.Invalid("no asset ids given")
	}

	idx, err := catalog.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	results := lo.Map(ids, func(id string, _ int) EncodedAsset {
		if !idx.Contains(id) {
			return EncodedAsset{ID: id}
		}
		return EncodedAsset{ID: id, Encoded: assetid.Encode(id), Found: true}
	})
	return results, errs.NotFound(idx.Missing(ids))
}

// CheckAssets reports whether each requested asset is in src.
// Unknown ids are simply unavailable, never an error.
func CheckAssets(ctx context.Context, src catalog.Source, ids []string) ([]Availability, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil, errs.Invalid("no asset ids given")
	}

	idx, err := catalog.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	return lo.Map(ids, func(id string, _ int) Availability {
		return Availability{ID: id, Available: idx.Contains(id)}
	}), nil
}
