package config

import "time"

const (
	// DefaultAPIURL is the base URL of the oracle REST service.
	DefaultAPIURL = "https://rest.jp.stork-oracle.network"

	// DefaultTimeout bounds every request made to the REST service.
	DefaultTimeout = 15 * time.Second
)

// Environment variables that override the settings file.
const (
	EnvAPIURL  = "ASSET_CONF_API_URL"
	EnvTimeout = "ASSET_CONF_TIMEOUT"
	EnvToken   = "ASSET_CONF_TOKEN"
)

// Settings is the resolved runtime configuration for a single invocation.
// - APIURL: base URL of the REST service, without a trailing slash.
// - Timeout: per-request timeout applied at the HTTP client.
// - TokenFile: path of the JSON file holding the stored token.
// - Token: token taken from the environment; empty means use TokenFile.
type Settings struct {
	APIURL    string
	Timeout   time.Duration
	TokenFile string
	Token     string
}

// fileSettings mirrors settings.yaml on disk. Timeout is a string so that
// values like "30s", "1m" or "1d" can be written by hand.
type fileSettings struct {
	APIURL  string `yaml:"api_url"`
	Timeout string `yaml:"timeout"`
}
