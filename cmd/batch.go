package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/honei/prospect-cli/internal/batch"
	"github.com/honei/prospect-cli/internal/osint"
)

var batchCity string

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Research a list of businesses, one line per target",
	Long:  "Reads targets from the given file, or stdin when omitted. Each line is a business name, optionally followed by a city after a comma or dash.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
			if err != nil {
				return eris.Wrapf(err, "read targets from %s", args[0])
			}
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return eris.Wrap(err, "read targets from stdin")
			}
		}

		targets := batch.ParseTargets(string(raw))
		if len(targets) == 0 {
			return eris.New("no targets to research")
		}

		provider, err := initProvider()
		if err != nil {
			return err
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		fallback := batchCity
		if fallback == "" {
			fallback = cfg.Batch.FallbackCity
		}

		runner := batch.NewRunner(osint.NewFetcher(provider), st)
		out := cmd.OutOrStdout()

		for ev := range runner.Run(ctx, targets, fallback) {
			if ev.Err != nil {
				return ev.Err
			}
			fmt.Fprintf(out, "[%d/%d] %s — %s (fit %.0f)\n",
				ev.Current, ev.Total,
				ev.Profile.BusinessName, ev.Profile.City,
				ev.Profile.HoneiAnalysis.FitScore)
		}

		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchCity, "city", "", "fallback city for targets without one")
	rootCmd.AddCommand(batchCmd)
}
