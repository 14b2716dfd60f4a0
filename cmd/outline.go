package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"slidedeck/internal/deck"
)

var outlineNotes bool

var outlineCmd = &cobra.Command{
	Use:   "outline <deck.yaml>",
	Short: "Print the slide list of a deck",
	Long:  `Parses the deck manifest and prints one jump-menu line per slide, optionally followed by its speaker notes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.Load(args[0])
		if err != nil {
			return err
		}
		writeOutline(cmd.OutOrStdout(), d, outlineNotes)
		return nil
	},
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineNotes, "notes", false, "include speaker notes")
	rootCmd.AddCommand(outlineCmd)
}

func writeOutline(w io.Writer, d *deck.Deck, notes bool) {
	if d.Title != "" {
		fmt.Fprintf(w, "%s\n\n", d.Title)
	}
	for _, s := range d.Slides {
		fmt.Fprintln(w, s.JumpLabel())
		if notes {
			fmt.Fprintf(w, "    %s\n", s.NotesText())
		}
	}
	for _, doc := range d.Documents {
		fmt.Fprintf(w, "[doc] %s (%s)\n", doc.Title, doc.URL)
	}
}
