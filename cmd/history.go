package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/honei/prospect-cli/internal/export"
	"github.com/honei/prospect-cli/internal/history"
	"github.com/honei/prospect-cli/internal/model"
	"github.com/honei/prospect-cli/pkg/notion"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the dossier history",
}

var (
	historyListStatus string
	historyListCity   string
)

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved dossiers, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		if historyListStatus != "" && !model.ValidCRMStatus(historyListStatus) {
			return eris.Errorf("unknown CRM status %q", historyListStatus)
		}

		entries := st.List(history.Filter{
			CRMStatus: model.CRMStatus(historyListStatus),
			City:      historyListCity,
		})
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "historial vacío")
			return nil
		}

		writeHistoryTable(cmd.OutOrStdout(), entries)
		return nil
	},
}

var (
	historyUpdateStatus   string
	historyUpdateNext     string
	historyUpdateNotes    string
	historyUpdateOutreach string
)

var historyUpdateCmd = &cobra.Command{
	Use:   "update <index>",
	Short: "Edit the CRM fields of a saved dossier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Wrapf(err, "parse index %q", args[0])
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var patch history.Patch
		if cmd.Flags().Changed("status") {
			if !model.ValidCRMStatus(historyUpdateStatus) {
				return eris.Errorf("unknown CRM status %q", historyUpdateStatus)
			}
			s := model.CRMStatus(historyUpdateStatus)
			patch.CRMStatus = &s
		}
		if cmd.Flags().Changed("next") {
			patch.NextAction = &historyUpdateNext
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = &historyUpdateNotes
		}
		if cmd.Flags().Changed("outreach") {
			patch.OutreachStatus = &historyUpdateOutreach
		}

		return st.Update(ctx, index, patch)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Remove a dossier from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Wrapf(err, "parse index %q", args[0])
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		return st.Delete(ctx, index)
	},
}

var (
	historyExportFormat string
	historyExportOut    string
)

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as json, yaml or xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := export.ParseFormat(historyExportFormat)
		if err != nil {
			return err
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		out := cmd.OutOrStdout()
		if historyExportOut != "" {
			f, err := os.Create(historyExportOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", historyExportOut)
			}
			defer f.Close()
			out = f
		}

		return export.Write(out, st.Entries(), format)
	},
}

var historyPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Create one Notion lead page per saved dossier",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Notion.Token == "" || cfg.Notion.LeadDB == "" {
			return eris.New("notion token and lead_db are required")
		}

		st, closeStore, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		pusher := export.NewNotionPusher(notion.NewClient(cfg.Notion.Token), cfg.Notion.LeadDB)
		created, err := pusher.Push(ctx, st.Entries())
		if err != nil {
			return err
		}

		zap.L().Info("leads pushed", zap.Int("created", created))
		fmt.Fprintf(cmd.OutOrStdout(), "%d leads creados en Notion\n", created)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historyListStatus, "status", "", "filter by CRM status")
	historyListCmd.Flags().StringVar(&historyListCity, "city", "", "filter by city (accent-insensitive)")

	historyUpdateCmd.Flags().StringVar(&historyUpdateStatus, "status", "", "new CRM status")
	historyUpdateCmd.Flags().StringVar(&historyUpdateNext, "next", "", "next action")
	historyUpdateCmd.Flags().StringVar(&historyUpdateNotes, "notes", "", "operator notes")
	historyUpdateCmd.Flags().StringVar(&historyUpdateOutreach, "outreach", "", "outreach status")

	historyExportCmd.Flags().StringVar(&historyExportFormat, "format", "json", "export format: json, yaml, xlsx")
	historyExportCmd.Flags().StringVarP(&historyExportOut, "out", "o", "", "output file (default stdout)")

	historyCmd.AddCommand(historyListCmd, historyUpdateCmd, historyDeleteCmd, historyExportCmd, historyPushCmd)
	rootCmd.AddCommand(historyCmd)
}
