// Recents command lists recently opened songs and artists.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var recentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "List recently opened songs and artists",
	Args:  cobra.NoArgs,
	RunE:  runRecents,
}

func runRecents(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	recents, err := backend.FindRecents()
	if err != nil {
		return fmt.Errorf("list recents: %w", err)
	}

	if flagJSON {
		return printJSON(recents)
	}

	if len(recents) == 0 {
		fmt.Println("No recents.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TYPE\tID\tNAME\tOPENED")
	fmt.Fprintln(w, "----\t--\t----\t------")
	for _, r := range recents {
		name := ""
		id := ""
		switch {
		case r.Kind == types.RecentKindSong && r.Song != nil:
			id = r.Song.ID
			name = r.Song.Title
		case r.Kind == types.RecentKindArtist && r.Artist != nil:
			id = r.Artist.ID
			name = r.Artist.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.Kind, id, name, r.AddedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	return nil
}
