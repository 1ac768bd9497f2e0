package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"asset-conf/internal/errs"
	"asset-conf/internal/logger"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// LoadSettings builds the Settings for this invocation.
// Precedence, lowest first: built-in defaults, the settings file, environment
// variables. Command-line flags are applied on top by the caller.
//
// An empty settingsPath means the default location; a missing file at the
// default location is not an error, a missing explicit file is.
func LoadSettings(settingsPath string) (Settings, error) {
	st := Settings{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}

	tokenPath, err := TokenPath()
	if err != nil {
		return st, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	st.TokenFile = tokenPath

	explicit := settingsPath != ""
	if !explicit {
		if settingsPath, err = SettingsPath(); err != nil {
			return st, fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
	} else if settingsPath, err = ExpandPath(settingsPath); err != nil {
		return st, errs.Invalid("%v", err)
	}

	raw, err := os.ReadFile(settingsPath)
	switch {
	case err == nil:
		if err := applyFile(&st, raw, settingsPath); err != nil {
			return st, err
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		logger.Debug("[DEBUG] No settings file at %s, using defaults\n", settingsPath)
	default:
		return st, fmt.Errorf("%w: reading settings %s: %w", errs.ErrIO, settingsPath, err)
	}

	if err := applyEnv(&st); err != nil {
		return st, err
	}

	logger.Debug("[DEBUG] Settings: api_url=%s timeout=%s token_file=%s\n", st.APIURL, st.Timeout, st.TokenFile)
	return st, nil
}

// applyFile overlays a parsed settings.yaml onto st.
func applyFile(st *Settings, raw []byte, path string) error {
	var fsettings fileSettings
	if err := yaml.Unmarshal(raw, &fsettings); err != nil {
		return errs.Invalid("parsing settings %s: %v", path, err)
	}

	if fsettings.APIURL != "" {
		st.APIURL = NormalizeURL(fsettings.APIURL)
	}
	if fsettings.Timeout != "" {
		d, err := ParseTimeout(fsettings.Timeout)
		if err != nil {
			return errs.Invalid("settings %s: %v", path, err)
		}
		st.Timeout = d
	}
	return nil
}

// applyEnv overlays ASSET_CONF_* environment variables onto st.
func applyEnv(st *Settings) error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		st.APIURL = NormalizeURL(v)
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return errs.Invalid("%s: %v", EnvTimeout, err)
		}
		st.Timeout = d
	}
	st.Token = strings.TrimSpace(os.Getenv(EnvToken))
	return nil
}

// ParseTimeout parses a human duration such as "30s", "1m30s" or "1d".
// The result must be positive.
func ParseTimeout(s string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", s)
	}
	return d, nil
}

// NormalizeURL trims whitespace and trailing slashes from a base URL.
func NormalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
