package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/stash"
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print all chunks in a PNG file",
	Long: `Print the type, data and CRC of every chunk in a PNG file.

Examples:
  pngstash print -f out.png
  pngstash print -f out.png --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file-path")
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == formatTable {
			fmt.Fprintf(out, "Printing all chunks in file '%s'\n", filePath)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		entries, err := stash.NewService().List(filePath, data)
		if err != nil {
			return err
		}
		return outputChunks(out, format, entries)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringP("file-path", "f", "", "Path to the PNG file (required)")
	printCmd.Flags().String("format", formatTable, "Output format (table or json)")
	if err := printCmd.MarkFlagRequired("file-path"); err != nil {
		panic(err)
	}
}
