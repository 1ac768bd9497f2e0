package cmd

import (
	"errors"
	"fmt"
	"strings"

	"asset-conf/internal/api"
	"asset-conf/internal/assetid"
	"asset-conf/internal/errs"
	"asset-conf/internal/generator"
	"asset-conf/internal/logger"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func addAssetCommands(rootCmd *cobra.Command, opts *options) {
	var withEncoded bool
	getAssetsCmd := &cobra.Command{
		Use:   "get-assets",
		Short: "Get available assets",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			assets, err := src.ListAssets(cmd.Context())
			if err != nil {
				return withTokenHint(err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Total Assets: %d\n", len(assets))
			if withEncoded {
				renderTable(out, []string{"Asset", "Encoded ID"}, lo.Map(assets, func(id string, _ int) []string {
					return []string{id, assetid.Encode(id)}
				}))
				return nil
			}
			_, _ = fmt.Fprintln(out, "Assets:")
			for _, id := range assets {
				_, _ = fmt.Fprintf(out, "  %s\n", id)
			}
			return nil
		},
	}
	getAssetsCmd.Flags().BoolVarP(&withEncoded, "encoded", "e", false, "Also print encoded asset ids")

	var encodeList string
	getEncodedCmd := &cobra.Command{
		Use:   "get-encoded -a <id1,id2,...>",
		Short: "Print encoded ids for the given assets",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := generator.SplitIDs(encodeList)
			if len(ids) == 0 {
				return errs.Invalid("at least one asset is required (-a)")
			}
			src, err := opts.source()
			if err != nil {
				return err
			}

			results, err := api.EncodeAssets(cmd.Context(), src, ids)
			if err != nil && !errors.Is(err, errs.ErrAssetNotFound) {
				return withTokenHint(err)
			}

			// Known assets are printed even when others are missing.
			found := lo.Filter(results, func(r api.EncodedAsset, _ int) bool { return r.Found })
			if len(found) > 0 {
				renderTable(cmd.OutOrStdout(), []string{"Asset", "Encoded ID"}, lo.Map(found, func(r api.EncodedAsset, _ int) []string {
					return []string{r.ID, r.Encoded}
				}))
			}
			return err
		},
	}
	getEncodedCmd.Flags().StringVarP(&encodeList, "assets", "a", "", "Comma-separated list of assets")

	var checkList string
	checkCmd := &cobra.Command{
		Use:   "check <id1,id2,...>",
		Short: "Check which assets are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := generator.SplitIDs(strings.Join(append(args, checkList), ","))
			if len(ids) == 0 {
				return errs.Invalid("at least one asset is required")
			}
			src, err := opts.source()
			if err != nil {
				return err
			}

			results, err := api.CheckAssets(cmd.Context(), src, ids)
			if err != nil {
				return withTokenHint(err)
			}

			renderTable(cmd.OutOrStdout(), []string{"Asset", "Available"}, lo.Map(results, func(r api.Availability, _ int) []string {
				return []string{r.ID, yesNo(r.Available)}
			}))

			available := lo.CountBy(results, func(r api.Availability) bool { return r.Available })
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d assets available\n", available, len(results))
			if available < len(results) {
				logger.Warn("[WARN] Unavailable: %s\n", strings.Join(lo.FilterMap(results, func(r api.Availability, _ int) (string, bool) {
					return r.ID, !r.Available
				}), ", "))
			}
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&checkList, "assets", "a", "", "Comma-separated list of assets")

	rootCmd.AddCommand(getAssetsCmd, getEncodedCmd, checkCmd)
}
