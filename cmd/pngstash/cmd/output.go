package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ssargent/pngstash/pkg/journal"
	"github.com/ssargent/pngstash/pkg/stash"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

const separator = "-----------------------------"

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
	return nil
}

// outputChunks displays the chunks of a container
func outputChunks(w io.Writer, format string, entries []stash.Entry) error {
	if format == formatJSON {
		return outputJSON(w, entries)
	}
	return outputChunksTable(w, entries)
}

// outputChunksTable displays one block per chunk
func outputChunksTable(w io.Writer, entries []stash.Entry) error {
	for _, e := range entries {
		fmt.Fprintln(w, headingStyle.Render("Chunk type: "+e.Type))
		fmt.Fprintf(w, "Data: %s\n", e.Message)
		fmt.Fprintf(w, "CRC: 0x%08x\n", e.CRC)
		fmt.Fprintln(w, separatorStyle.Render(separator))
	}
	return nil
}

// outputHistory displays journal entries
func outputHistory(w io.Writer, format string, entries []journal.Entry) error {
	if format == formatJSON {
		return outputJSON(w, entries)
	}
	return outputHistoryTable(w, entries)
}

// outputHistoryTable displays journal entries in table format
func outputHistoryTable(w io.Writer, entries []journal.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTIME\tOP\tTYPE\tLENGTH\tCRC\tSOURCE")

	for _, e := range entries {
		source := e.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t0x%08x\t%s\n",
			e.ID,
			e.Time.Local().Format(time.DateTime),
			e.Op,
			e.ChunkType,
			e.Length,
			e.CRC,
			source)
	}

	return nil
}

// outputJSON displays v as indented JSON
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
