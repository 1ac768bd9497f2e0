package generator

import (
	"strings"

	"asset-conf/internal/errs"

	"github.com/samber/lo"
)

const (
	// DefaultFallbackPeriodSec is used when no fallback period is requested.
	DefaultFallbackPeriodSec = 60

	// DefaultPercentChangeThreshold is used when no threshold is requested.
	DefaultPercentChangeThreshold = 1.0
)

// Request describes one gen-config run.
// - ExplicitIDs: assets to include, in the order given.
// - RandomCount: number of extra assets to draw from the catalog; 0 for none.
// - FallbackPeriodSec / PercentChangeThreshold: nil means the default.
// - OutputPath: YAML file to write.
type Request struct {
	ExplicitIDs            []string
	RandomCount            int
	FallbackPeriodSec      *int
	PercentChangeThreshold *float64
	OutputPath             string
}

// Validate checks the request without touching the network or disk.
// At least one of ExplicitIDs or a positive RandomCount is required, and
// OutputPath must name a .yaml or .yml file.
func (r Request) Validate() error {
	if strings.TrimSpace(r.OutputPath) == "" {
		return errs.Invalid("output path is required (-o)")
	}
	lower := strings.ToLower(r.OutputPath)
	if !strings.HasSuffix(lower, ".yaml") && !strings.HasSuffix(lower, ".yml") {
		return errs.Invalid("output file must have .yaml or .yml extension")
	}
	if r.RandomCount < 0 {
		return errs.Invalid("number of random assets must be greater than 0")
	}
	if len(normalizeIDs(r.ExplicitIDs)) == 0 && r.RandomCount == 0 {
		return errs.Invalid("either -a or -r must be provided")
	}
	if r.FallbackPeriodSec != nil && *r.FallbackPeriodSec <= 0 {
		return errs.Invalid("fallback period must be a positive number of seconds, got %d", *r.FallbackPeriodSec)
	}
	if r.PercentChangeThreshold != nil && !(*r.PercentChangeThreshold >= 0) {
		return errs.Invalid("percent change threshold must not be negative, got %v", *r.PercentChangeThreshold)
	}
	return nil
}

func (r Request) fallbackPeriod() int {
	if r.FallbackPeriodSec != nil {
		return *r.FallbackPeriodSec
	}
	return DefaultFallbackPeriodSec
}

func (r Request) percentChange() float64 {
	if r.PercentChangeThreshold != nil {
		return *r.PercentChangeThreshold
	}
	return DefaultPercentChangeThreshold
}

// normalizeIDs trims ids, drops empties and keeps the first of any duplicates.
func normalizeIDs(ids []string) []string {
	trimmed := lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })
	return lo.Uniq(lo.Compact(trimmed))
}

// SplitIDs parses a comma separated asset list such as "BTCUSD, ETHUSD".
func SplitIDs(list string) []string {
	return normalizeIDs(strings.Split(list, ","))
}
