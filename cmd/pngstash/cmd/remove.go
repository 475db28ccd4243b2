package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/stash"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a chunk from a PNG file",
	Long: `Remove the first chunk of a type from a PNG file. The file is rewritten
in place.

Example:
  pngstash remove -f out.png -c ruSt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		filePath, _ := cmd.Flags().GetString("file-path")
		chunkType, _ := cmd.Flags().GetString("chunk-type")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Removing chunk type '%s' from file '%s'\n", chunkType, filePath)

		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", filePath, err)
		}
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		svc := a.service()
		updated, removed, err := svc.Remove(filePath, data, chunkType)
		if stash.IsNotFound(err) {
			fmt.Fprintf(out, "No chunk found with type '%s'\n", chunkType)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Removed chunk: %s\n", removed.Message)
		if err := os.WriteFile(filePath, updated, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", filePath, err)
		}
		svc.Commit(journal.OpRemove, filePath, removed)

		fmt.Fprintf(out, "Chunk removed successfully.\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringP("file-path", "f", "", "Path to the PNG file (required)")
	removeCmd.Flags().StringP("chunk-type", "c", "", "Chunk type to remove (required)")
	if err := removeCmd.MarkFlagRequired("file-path"); err != nil {
		panic(err)
	}
	if err := removeCmd.MarkFlagRequired("chunk-type"); err != nil {
		panic(err)
	}
}
