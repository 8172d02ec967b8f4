package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honei/prospect-cli/internal/osint"
	"github.com/honei/prospect-cli/pkg/abstract"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Check deliverability of an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Abstract.Key == "" {
			return &osint.ConfigurationError{Missing: "PROSPECT_ABSTRACT_KEY"}
		}

		client := abstract.NewClient(cfg.Abstract.Key, abstract.WithBaseURL(cfg.Abstract.BaseURL))
		v, err := client.Verify(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", v.State, v.StatusDetail)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
