package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the edit history",
	Long: `Show the encode and remove operations recorded in the journal, newest
first.

Examples:
  pngstash history
  pngstash history --limit 5 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		if limit < 0 {
			return fmt.Errorf("invalid limit %d", limit)
		}

		j, err := a.openJournal()
		if err != nil {
			return err
		}
		if j == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled")
			return nil
		}

		entries, err := j.List(limit)
		if err != nil {
			return err
		}
		return outputHistory(cmd.OutOrStdout(), format, entries)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 for all)")
	historyCmd.Flags().String("format", formatTable, "Output format (table or json)")
}
