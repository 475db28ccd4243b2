package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/stash"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a message into a PNG file",
	Long: `Encode a message into a PNG file as a new chunk.

The chunk is appended after the existing chunks and the result is written to
--output-file, or to the configured default output when the flag is absent.

Examples:
  pngstash encode -f dice.png -c ruSt -m "a secret"
  pngstash encode -f dice.png -c ruSt -m "a secret" -o out.png
  pngstash encode -f dice.png -m "a secret" --raw`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		filePath, _ := cmd.Flags().GetString("file-path")
		chunkType, _ := cmd.Flags().GetString("chunk-type")
		message, _ := cmd.Flags().GetString("message")
		output, _ := cmd.Flags().GetString("output-file")
		raw, _ := cmd.Flags().GetBool("raw")

		if chunkType == "" {
			chunkType = a.cfg.DefaultChunkType
		}
		if output == "" {
			output = a.cfg.DefaultOutput
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Encoding message '%s' into file '%s' under chunk type '%s'\n", message, filePath, chunkType)

		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		svc := a.service(stash.WithRawAppend(raw))
		encoded, added, err := svc.Encode(filePath, data, chunkType, []byte(message))
		if err != nil {
			return err
		}

		if err := os.WriteFile(output, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		svc.Commit(journal.OpEncode, output, added)

		fmt.Fprintf(out, "Message encoded successfully.\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("file-path", "f", "", "Path to the input PNG file (required)")
	encodeCmd.Flags().StringP("chunk-type", "c", "", "Chunk type to encode the message under (default from config)")
	encodeCmd.Flags().StringP("message", "m", "", "Message to encode (required)")
	encodeCmd.Flags().StringP("output-file", "o", "", "Path to save the output PNG file (default from config)")
	encodeCmd.Flags().Bool("raw", false, "Append without validating the input file")
	if err := encodeCmd.MarkFlagRequired("file-path"); err != nil {
		panic(err)
	}
	if err := encodeCmd.MarkFlagRequired("message"); err != nil {
		panic(err)
	}
}
