package cmd

import (
	"context"

	"asset-conf/internal/api"
	"asset-conf/internal/catalog"
	"asset-conf/internal/config"
	"asset-conf/internal/errs"
	"asset-conf/internal/logger"
	"asset-conf/internal/state"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X asset-conf/cmd.version=...".
var version = "dev"

// options holds the global flags shared by every subcommand.
type options struct {
	debug        bool
	noColor      bool
	apiURL       string
	timeout      string
	catalogPath  string
	settingsPath string
}

// NewRootCmd builds the `asset-conf` command tree. Each call returns an
// independent tree with its own flag values, so tests can run commands in
// isolation.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "asset-conf",
		Short: "A CLI tool for asset configuration",
		Long: `asset-conf fetches the oracle asset catalog and generates asset
configuration files for price feed pushers.

Start by storing your API token:

   asset-conf set-token <token>`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRun is a hook that runs before any subcommand.
		// Here, we initialize the logger based on the debug flag.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			logger.Init(opts.debug)
		},
	}
	rootCmd.SetVersionTemplate("asset-conf version {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errs.Invalid("%v", err)
	})

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&opts.apiURL, "api-url", "", "Asset API base URL (default "+config.DefaultAPIURL+")")
	flags.StringVar(&opts.timeout, "timeout", "", "Request timeout, e.g. 30s or 1m (default 15s)")
	flags.StringVar(&opts.catalogPath, "catalog", "", "Read the asset catalog from a snapshot file instead of the API")
	flags.StringVar(&opts.settingsPath, "settings", "", "Path to settings.yaml (default <config dir>/asset_conf/settings.yaml)")

	addTokenCommands(rootCmd, opts)
	addAssetCommands(rootCmd, opts)
	addGenConfigCommand(rootCmd, opts)

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := NewRootCmd().ExecuteContext(context.Background())
	reportError(err)
	return errs.ExitCode(err)
}

// reportError prints a failed command's error in red on stderr.
func reportError(err error) {
	if err != nil {
		logger.Error("Error: %v\n", err)
	}
}

// settings resolves the Settings for this run, with flags applied last.
func (o *options) settings() (config.Settings, error) {
	st, err := config.LoadSettings(o.settingsPath)
	if err != nil {
		return st, err
	}
	if o.apiURL != "" {
		st.APIURL = config.NormalizeURL(o.apiURL)
	}
	if o.timeout != "" {
		d, err := config.ParseTimeout(o.timeout)
		if err != nil {
			return st, errs.Invalid("--timeout: %v", err)
		}
		st.Timeout = d
	}
	return st, nil
}

// tokenStore is the persistent token file.
func (o *options) tokenStore() (*state.FileStore, error) {
	st, err := o.settings()
	if err != nil {
		return nil, err
	}
	return state.NewFileStore(st.TokenFile), nil
}

// source picks where the catalog comes from: a snapshot file when --catalog
// is set, the REST API otherwise. ASSET_CONF_TOKEN takes precedence over the
// stored token for API calls.
func (o *options) source() (catalog.Source, error) {
	st, err := o.settings()
	if err != nil {
		return nil, err
	}

	if o.catalogPath != "" {
		path, err := config.ExpandPath(o.catalogPath)
		if err != nil {
			return nil, errs.Invalid("--catalog: %v", err)
		}
		logger.Debug("[DEBUG] Using catalog snapshot %s\n", path)
		return catalog.NewFileSource(path), nil
	}

	var creds state.CredentialStore = state.NewFileStore(st.TokenFile)
	if st.Token != "" {
		logger.Debug("[DEBUG] Using token from %s\n", config.EnvToken)
		creds = &state.MemoryStore{Token: st.Token}
	}
	return api.NewClient(st.APIURL, creds, api.WithTimeout(st.Timeout)), nil
}
