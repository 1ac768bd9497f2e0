package main

import (
	"os"

	"asset-conf/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution,
// and exits with the status code it returns.
//
// asset-conf is a small client for the oracle asset REST service that:
//   - Stores the API token in the user config directory (set-token / get-token)
//   - Lists the asset catalog and derives encoded asset ids (get-assets / get-encoded / check)
//   - Generates YAML asset configuration files from explicit and randomly sampled assets (gen-config)
//
// Error handling strategy:
//   - Every failure is terminal for the command; there are no retries
//   - Errors are printed in red on stderr and mapped to a non-zero exit code
//     (2 for invalid arguments, 1 for everything else)
func main() {
	os.Exit(cmd.Execute())
}
