// Package errs defines the error kinds every asset-conf command can fail with.
//
// Components wrap one of the sentinels below with context using fmt.Errorf and
// %w; the command layer only ever inspects errors through errors.Is/As and
// ExitCode.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotConfigured   = errors.New("no authentication token set")
	ErrAuth            = errors.New("authentication failed")
	ErrNetwork         = errors.New("network error")
	ErrAPI             = errors.New("api error")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrIO              = errors.New("i/o error")
)

// AssetNotFoundError names every asset id that the catalog does not know.
type AssetNotFoundError struct {
	IDs []string
}

func (e *AssetNotFoundError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("asset %q not found in available assets", e.IDs[0])
	}
	quoted := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("assets %s not found in available assets", strings.Join(quoted, ", "))
}

// Is makes errors.Is(err, ErrAssetNotFound) hold for *AssetNotFoundError.
func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// NotFound returns an *AssetNotFoundError for ids, or nil when ids is empty.
func NotFound(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return &AssetNotFoundError{IDs: ids}
}

// Invalid is shorthand for an ErrInvalidArgument with a formatted reason.
func Invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}

// ExitCode maps an error to the process exit status.
// 0 for nil, 2 for argument errors, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidArgument):
		return 2
	default:
		return 1
	}
}
