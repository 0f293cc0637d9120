// Songs command lists one artist's songs.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var songsCmd = &cobra.Command{
	Use:   "songs <artist-id>",
	Short: "List an artist's songs",
	Long: `Songs lists all songs by one artist, locale-sorted by title, and
records the artist in the recents list.

Example:
  songidb songs cz-hymns/karel-kryl
  songidb songs cz-hymns/karel-kryl --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSongs,
}

func runSongs(cmd *cobra.Command, args []string) error {
	artistID := args[0]

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	artist, err := backend.GetArtist(artistID)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "artist %q not found\n", artistID)
			os.Exit(exitUserError)
		}
		return fmt.Errorf("get artist: %w", err)
	}

	if err := backend.AddRecentArtist(artist); err != nil {
		return fmt.Errorf("record recent: %w", err)
	}

	songs, err := backend.FindSongsByArtist(artistID)
	if err != nil {
		return fmt.Errorf("list songs: %w", err)
	}

	if flagJSON {
		return printJSON(songs)
	}

	printSongTable(artist.Name, songs)
	return nil
}

// printSongTable prints one artist's songs in a human-readable table format.
func printSongTable(artistName string, songs []types.Song) {
	if len(songs) == 0 {
		fmt.Println("No songs found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tDATABASE")
	fmt.Fprintln(w, "--\t-----\t--------")
	for _, s := range songs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Title, s.DatabaseTitle)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("%s: %d song(s)\n", artistName, len(songs))
}
