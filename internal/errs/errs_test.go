package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("resolving assets: %w", NotFound([]string{"UNKNOWNID"}))

	require.ErrorIs(t, err, ErrAssetNotFound)

	var nf *AssetNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"UNKNOWNID"}, nf.IDs)
	assert.Contains(t, err.Error(), "UNKNOWNID")
}

func TestAssetNotFoundError_MultipleIDs(t *testing.T) {
	err := NotFound([]string{"FOO", "BAR"})
	assert.Equal(t, `assets "FOO", "BAR" not found in available assets`, err.Error())
}

func TestNotFound_Empty(t *testing.T) {
	assert.NoError(t, NotFound(nil))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"invalid", Invalid("missing -o"), 2},
		{"not found", NotFound([]string{"X"}), 1},
		{"wrapped network", fmt.Errorf("fetch: %w", ErrNetwork), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
