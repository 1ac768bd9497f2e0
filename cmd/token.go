package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"asset-conf/internal/errs"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// setTokenHint is appended to errors caused by a missing token.
const setTokenHint = "Set token with:\n\n   asset-conf set-token <token>"

func addTokenCommands(rootCmd *cobra.Command, opts *options) {
	// setTokenCmd stores the API token. Without an argument the token is read
	// from stdin, hidden when stdin is a terminal, so it stays out of shell history.
	setTokenCmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Set the authentication token",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				if token, err = readToken(cmd); err != nil {
					return err
				}
			}

			store, err := opts.tokenStore()
			if err != nil {
				return err
			}
			if err := store.Save(token); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Authentication token updated successfully")
			return nil
		},
	}

	getTokenCmd := &cobra.Command{
		Use:   "get-token",
		Short: "Get the current authentication token",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.tokenStore()
			if err != nil {
				return err
			}
			token, err := store.Load()
			if err != nil {
				return withTokenHint(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	rootCmd.AddCommand(setTokenCmd, getTokenCmd)
}

// readToken reads a token from the command's stdin. On a terminal it prompts
// on stderr and disables echo.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Enter token: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("%w: reading token: %w", errs.ErrIO, err)
		}
		return strings.TrimRight(string(raw), "\r\n"), nil
	}

	raw, err := io.ReadAll(io.LimitReader(in, 64*1024))
	if err != nil {
		return "", fmt.Errorf("%w: reading token from stdin: %w", errs.ErrIO, err)
	}
	// Only the line ending is dropped; the token itself is kept verbatim.
	token := strings.TrimRight(string(raw), "\r\n")
	if strings.TrimSpace(token) == "" {
		return "", errs.Invalid("no token given; pass it as an argument or on stdin")
	}
	return token, nil
}

// withTokenHint adds set-token instructions to ErrNotConfigured errors.
func withTokenHint(err error) error {
	if errors.Is(err, errs.ErrNotConfigured) {
		return fmt.Errorf("%w. %s", err, setTokenHint)
	}
	return err
}

// maxArgs is cobra.MaximumNArgs with an ErrInvalidArgument error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return errs.Invalid("%s accepts at most %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
