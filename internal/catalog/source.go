// Package catalog provides the list of assets known to the oracle service.
//
// A Source is anything that can produce the full catalog in one call: the
// REST client in internal/api, or a snapshot file on disk for offline use.
// Index wraps a fetched catalog for membership queries.
package catalog

import (
	"context"

	"github.com/samber/lo"
)

// Source lists every asset symbol in catalog order.
type Source interface {
	ListAssets(ctx context.Context) ([]string, error)
}

// Symbols keeps the string entries of a decoded catalog array, in order.
// Anything else (numbers, objects, null) is skipped rather than failing the
// whole catalog.
func Symbols(entries []any) []string {
	return lo.FilterMap(entries, func(v any, _ int) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// Index is an ordered, duplicate-free view of a catalog.
type Index struct {
	ids []string
	set map[string]struct{}
}

// NewIndex builds an Index from ids, keeping the first occurrence of each.
func NewIndex(ids []string) *Index {
	uniq := lo.Uniq(ids)
	set := make(map[string]struct{}, len(uniq))
	for _, id := range uniq {
		set[id] = struct{}{}
	}
	return &Index{ids: uniq, set: set}
}

// Fetch lists src and indexes the result.
func Fetch(ctx context.Context, src Source) (*Index, error) {
	ids, err := src.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(ids), nil
}

// Len is the number of distinct assets.
func (x *Index) Len() int { return len(x.ids) }

// IDs returns the assets in catalog order. The slice must not be modified.
func (x *Index) IDs() []string { return x.ids }

// Contains reports whether id is in the catalog.
func (x *Index) Contains(id string) bool {
	_, ok := x.set[id]
	return ok
}

// Missing returns the ids not in the catalog, in the order given, without duplicates.
func (x *Index) Missing(ids []string) []string {
	return lo.Uniq(lo.Reject(ids, func(id string, _ int) bool {
		return x.Contains(id)
	}))
}

// Static is a fixed in-memory Source.
type Static []string

// ListAssets returns a copy of the static catalog.
func (s Static) ListAssets(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}
