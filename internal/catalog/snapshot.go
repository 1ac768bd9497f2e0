package catalog

import (
	"archive/zip"    // For reading .zip snapshots
	"bytes"
	"compress/bzip2" // For reading .bz2 compressed snapshots
	"compress/gzip"  // For reading .gz compressed snapshots
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"asset-conf/internal/errs"
	"asset-conf/internal/logger"

	"github.com/bodgit/sevenzip" // For reading .7z snapshots
	json "github.com/bytedance/sonic"
	"github.com/xi2/xz"          // For reading .xz compressed snapshots
)

// FileSource reads the catalog from a snapshot file instead of the network.
// Supported layouts: plain .json, .json.gz, .json.bz2, .json.xz, and .zip or
// .7z archives containing a .json file.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// snapshotDoc is the response body shape of the assets endpoint.
type snapshotDoc struct {
	Data []any `json:"data"`
}

// ListAssets reads and decodes the snapshot.
func (s *FileSource) ListAssets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := readSnapshot(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalog snapshot %s: %w", errs.ErrIO, s.Path, err)
	}

	ids, err := DecodeAssets(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog snapshot %s: %w", errs.ErrIO, s.Path, err)
	}
	logger.Debug("[DEBUG] Loaded %d assets from snapshot %s\n", len(ids), s.Path)
	return ids, nil
}

// DecodeAssets accepts either {"data": [...]} or a bare JSON array of symbols.
// Non-string entries are dropped, see Symbols.
func DecodeAssets(raw []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if trimmed[0] == '[' {
		var entries []any
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decoding asset list: %w", err)
		}
		return Symbols(entries), nil
	}

	var doc snapshotDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decoding asset document: %w", err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("missing \"data\" array")
	}
	return Symbols(doc.Data), nil
}

// readSnapshot routes to the right reader based on the file suffix.
func readSnapshot(path string) ([]byte, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] snapshot type is zip\n")
		return readZip(path)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] snapshot type is 7z\n")
		return read7z(path)
	default:
		return readCompressed(path, lower)
	}
}

// readCompressed handles plain JSON and single-stream compressed JSON.
func readCompressed(path, lower string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		reader = xzr
	case strings.HasSuffix(lower, ".json"):
	default:
		return nil, fmt.Errorf("unsupported snapshot format: %s", path)
	}
	return io.ReadAll(reader)
}

// readZip returns the first .json entry of a zip archive.
func readZip(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("no .json file in %s", path)
}

// read7z returns the first .json entry of a 7z archive.
func read7z(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("no .json file in %s", path)
}
