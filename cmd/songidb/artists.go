// Artists command lists artists, optionally filtered by letter.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var (
	artistsLetter string
	artistsDB     string
)

var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "List artists from active databases",
	Long: `Artists lists artists from all active databases, locale-sorted by
name. Use --letter to restrict to one initial letter ("*" groups names
that do not start with an ASCII letter) and --db to restrict to one
database regardless of its active flag.

Example:
  songidb artists
  songidb artists --letter B
  songidb artists --db cz-hymns --json`,
	Args: cobra.NoArgs,
	RunE: runArtists,
}

func init() {
	artistsCmd.Flags().StringVar(&artistsLetter, "letter", "", "restrict to one initial letter")
	artistsCmd.Flags().StringVar(&artistsDB, "db", "", "restrict to one database id")
}

func runArtists(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var artists []types.Artist
	if artistsLetter != "" {
		artists, err = backend.FindArtistsByLetter(artistsLetter, artistsDB)
	} else {
		artists, err = backend.FindArtists(artistsDB)
	}
	if err != nil {
		return fmt.Errorf("list artists: %w", err)
	}

	if flagJSON {
		return printJSON(artists)
	}

	printArtistTable(artists)
	return nil
}

// printArtistTable prints artists in a human-readable table format.
func printArtistTable(artists []types.Artist) {
	if len(artists) == 0 {
		fmt.Println("No artists found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tSONGS\tDATABASE")
	fmt.Fprintln(w, "--\t----\t-----\t--------")
	for _, a := range artists {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", a.ID, a.Name, a.SongCount, a.DatabaseTitle)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d artist(s)\n", len(artists))
}
