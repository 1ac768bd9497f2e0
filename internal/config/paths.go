package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	// dirName is the subdirectory created under the user config directory.
	dirName = "asset_conf"

	tokenFile    = "config.json"
	settingsFile = "settings.yaml"
)

// Dir returns the asset-conf config directory, e.g. ~/.config/asset_conf on
// Linux. XDG_CONFIG_HOME is honoured through os.UserConfigDir.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(base, dirName), nil
}

// TokenPath returns the path of the stored token file.
func TokenPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFile), nil
}

// SettingsPath returns the default path of settings.yaml.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return expanded, nil
}
