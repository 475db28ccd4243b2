package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/chunk"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <chunk-type>",
	Short: "Describe a chunk type code",
	Long: `Describe the properties encoded in the letter case of a chunk type code.

Example:
  pngstash info ruSt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chunkType, err := chunk.ParseType(args[0])
		if err != nil {
			return fmt.Errorf("invalid chunk type %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headingStyle.Render("Chunk type "+chunkType.String()))
		return chunkType.Describe(out)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
