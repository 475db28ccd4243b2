package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/stash"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a message from a PNG file",
	Long: `Decode the message stored under a chunk type in a PNG file.

Example:
  pngstash decode -f out.png -c ruSt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file-path")
		chunkType, _ := cmd.Flags().GetString("chunk-type")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Decoding message from file '%s' under chunk type '%s'\n", filePath, chunkType)

		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		// Reads are not journaled
		message, err := stash.NewService().Decode(filePath, data, chunkType)
		if stash.IsNotFound(err) {
			fmt.Fprintf(out, "No chunk found with type '%s'\n", chunkType)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Decoded message: %s\n", message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("file-path", "f", "", "Path to the PNG file (required)")
	decodeCmd.Flags().StringP("chunk-type", "c", "", "Chunk type to decode the message from (required)")
	if err := decodeCmd.MarkFlagRequired("file-path"); err != nil {
		panic(err)
	}
	if err := decodeCmd.MarkFlagRequired("chunk-type"); err != nil {
		panic(err)
	}
}
