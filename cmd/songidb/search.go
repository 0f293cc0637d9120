// Search command finds artists and songs across active databases.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Search artists and songs in active databases",
	Long: `Search tokenizes the terms the same way song texts are indexed and
finds entries where every term matches a word prefix. Artists match on
their names, songs on their titles first and full texts second. At most
100 results are returned.

Example:
  songidb search yellow submarine
  songidb search kryl --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria := strings.Join(args, " ")

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	result, err := backend.Search(criteria)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	// SearchDone false means the criteria tokenized to nothing, not that
	// results were truncated.
	if !result.SearchDone {
		fmt.Println("Nothing to search for.")
		return nil
	}

	if len(result.Artists) == 0 && len(result.Songs) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if len(result.Artists) > 0 {
		fmt.Println("Artists:")
		printArtistTable(result.Artists)
	}
	if len(result.Songs) > 0 {
		if len(result.Artists) > 0 {
			fmt.Println()
		}
		fmt.Println("Songs:")
		printSearchSongTable(result.Songs)
	}
	return nil
}

// printSearchSongTable prints search hits with their artists.
func printSearchSongTable(songs []types.Song) {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tARTIST\tDATABASE")
	fmt.Fprintln(w, "--\t-----\t------\t--------")
	for _, s := range songs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Artist, s.DatabaseTitle)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d song(s)\n", len(songs))
}
