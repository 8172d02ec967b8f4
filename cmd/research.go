package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/honei/prospect-cli/internal/osint"
)

var researchJSON bool

var researchCmd = &cobra.Command{
	Use:   "research <business> <city>",
	Short: "Research a single business and add it to the history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, err := initProvider()
		if err != nil {
			return err
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		fetcher := osint.NewFetcher(provider)
		profile, err := fetcher.Fetch(ctx, args[0], args[1])
		if err != nil {
			return eris.Wrap(err, "research")
		}

		if err := st.Upsert(ctx, *profile); err != nil {
			return eris.Wrap(err, "save dossier")
		}

		zap.L().Info("research complete",
			zap.String("business", profile.BusinessName),
			zap.String("city", profile.City),
			zap.Float64("fit_score", profile.HoneiAnalysis.FitScore),
			zap.Int("sources", len(profile.GoogleSearchSources)),
		)

		if researchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		}

		writeReport(cmd.OutOrStdout(), profile)
		return nil
	},
}

func init() {
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "print the raw dossier as JSON")
	rootCmd.AddCommand(researchCmd)
}
