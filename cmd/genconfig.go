package cmd

import (
	"fmt"

	"asset-conf/internal/generator"
	"asset-conf/internal/logger"

	"github.com/spf13/cobra"
)

func addGenConfigCommand(rootCmd *cobra.Command, opts *options) {
	var (
		output    string
		assets    string
		random    int
		fallback  int
		threshold float64
		seed      uint64
	)

	genConfigCmd := &cobra.Command{
		Use:     "gen-config -o <path> [-a <ids>] [-r <count>]",
		Aliases: []string{"gen", "generate", "gen-conf", "generate-config"},
		Short:   "Generate an asset configuration file",
		Long: `Generate a YAML asset configuration file.

Assets come from -a (explicit ids, in the order given), -r (a random
sample of the remaining catalog) or both. Every entry gets the fallback
period (-f) and percent change threshold (-p).`,
		Example: `  asset-conf gen-config -a BTCUSD,ETHUSD,SUIUSD -o config.yaml
  asset-conf gen-config -r 5 -f 30 -p 0.5 -o config.yaml`,
		Args: maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := generator.Request{
				ExplicitIDs: generator.SplitIDs(assets),
				RandomCount: random,
				OutputPath:  output,
			}
			if cmd.Flags().Changed("fallback") {
				req.FallbackPeriodSec = &fallback
			}
			if cmd.Flags().Changed("percent") {
				req.PercentChangeThreshold = &threshold
			}
			if err := req.Validate(); err != nil {
				return err
			}

			src, err := opts.source()
			if err != nil {
				return err
			}
			var rnd generator.RandomSource
			if cmd.Flags().Changed("seed") {
				rnd = generator.NewRandomSource(seed)
			}

			doc, path, err := generator.New(src, rnd).Run(cmd.Context(), req)
			if err != nil {
				return withTokenHint(err)
			}

			logger.Info("[INFO] Wrote %s\n", path)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated config with %d assets\n", len(doc.Entries))
			return nil
		},
	}

	f := genConfigCmd.Flags()
	f.StringVarP(&output, "output", "o", "", "Output file path (must end in .yaml or .yml)")
	f.StringVarP(&assets, "assets", "a", "", "Comma-separated list of assets to include")
	f.IntVarP(&random, "random", "r", 0, "Number of random assets to include")
	f.IntVarP(&fallback, "fallback", "f", generator.DefaultFallbackPeriodSec, "Fallback period in seconds")
	f.Float64VarP(&threshold, "percent", "p", generator.DefaultPercentChangeThreshold, "Percent change threshold")
	f.Uint64Var(&seed, "seed", 0, "Seed for random selection, for reproducible output")

	rootCmd.AddCommand(genConfigCmd)
}
