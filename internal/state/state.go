package state

import (
	"encoding/json" // For JSON encoding and decoding of the token file
	"errors"
	"fmt"
	"io/fs"
	"os" // For file system operations like reading and writing files
	"path/filepath"
	"strings"

	"asset-conf/internal/errs"
	"asset-conf/internal/logger" // Custom logger package for logging errors and debug info
)

// CredentialStore loads and saves the single token used to authenticate
// against the asset API.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
}

// AuthState is the on-disk shape of the token file.
type AuthState struct {
	AuthToken string `json:"auth_token,omitempty"`
}

// FileStore keeps the token in a JSON file, usually
// <user config dir>/asset_conf/config.json.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the token file. A missing file, or one without a token, is
// ErrNotConfigured; unreadable or corrupt files are ErrIO.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errs.ErrNotConfigured
		}
		return "", fmt.Errorf("%w: reading %s: %w", errs.ErrIO, s.Path, err)
	}

	var st AuthState
	if err := json.Unmarshal(raw, &st); err != nil {
		return "", fmt.Errorf("%w: parsing %s: %w", errs.ErrIO, s.Path, err)
	}
	if st.AuthToken == "" {
		return "", errs.ErrNotConfigured
	}

	logger.Debug("[DEBUG] Loaded token from %s\n", s.Path)
	return st.AuthToken, nil
}

// Save writes token to the token file, replacing whatever was there.
// The file holds a credential, so it is created 0600 in a 0700 directory.
// The token is stored exactly as given; only an all-whitespace token is
// rejected.
func (s *FileStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errs.Invalid("token must not be empty")
	}

	file, err := json.MarshalIndent(AuthState{AuthToken: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding token: %w", errs.ErrIO, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("%w: creating config directory: %w", errs.ErrIO, err)
	}

	logger.Debug("[DEBUG] Writing token to %s\n", s.Path)
	if err := os.WriteFile(s.Path, file, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %w", errs.ErrIO, s.Path, err)
	}
	return nil
}

// MemoryStore is an in-process CredentialStore, used by tests and when the
// token comes from the environment.
type MemoryStore struct {
	Token string
}

// Load returns the held token or ErrNotConfigured.
func (m *MemoryStore) Load() (string, error) {
	if m.Token == "" {
		return "", errs.ErrNotConfigured
	}
	return m.Token, nil
}

// Save replaces the held token.
func (m *MemoryStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errs.Invalid("token must not be empty")
	}
	m.Token = token
	return nil
}
