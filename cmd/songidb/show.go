// Show command renders one song with chords.
package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/internal/chords"
	"github.com/songiapp/songidb/internal/songview"
)

var (
	showTranspose int
	showNumeric   bool
	showSource    bool
	showColumns   int
)

var showCmd = &cobra.Command{
	Use:   "show <song-id>",
	Short: "Display a song with chords",
	Long: `Show renders one song as a chord sheet, with chord rows aligned
above the lyrics, and records the song in the recents list.

Use --transpose to shift all chords by a number of semitones,
--numeric to render chords as scale degrees relative to the song's
base tone, --source to print the raw SongPro text instead, and
--columns to split long songs into column chunks.

Example:
  songidb show cz-hymns/karel-kryl/andel
  songidb show cz-hymns/karel-kryl/andel --transpose -2
  songidb show cz-hymns/karel-kryl/andel --numeric
  songidb show cz-hymns/karel-kryl/andel --columns 2`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&showTranspose, "transpose", 0, "shift chords by this many semitones")
	showCmd.Flags().BoolVar(&showNumeric, "numeric", false, "render chords as scale degrees")
	showCmd.Flags().BoolVar(&showSource, "source", false, "print raw SongPro text")
	showCmd.Flags().IntVar(&showColumns, "columns", 1, "split the song into this many column chunks")
}

func runShow(cmd *cobra.Command, args []string) error {
	songID := args[0]

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	song, err := backend.GetSong(songID)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "song %q not found\n", songID)
			os.Exit(exitUserError)
		}
		return fmt.Errorf("get song: %w", err)
	}

	if err := backend.AddRecentSong(song); err != nil {
		return fmt.Errorf("record recent: %w", err)
	}

	if showSource {
		// The verbatim record, attribute lines included, never transposed.
		fmt.Println(song.Source)
		return nil
	}

	text := song.Text
	if showTranspose != 0 || showNumeric {
		text = chords.TransposeText(text, showTranspose, showNumeric)
	}

	if flagJSON {
		song.Text = text
		return printJSON(song)
	}

	fmt.Printf("%s\n%s (%s)\n\n", song.Title, song.Artist, song.DatabaseTitle)

	if showColumns > 1 {
		for i, column := range songview.DivideText(text, showColumns) {
			if i > 0 {
				fmt.Println("\n--------")
			}
			printChordSheet(column)
		}
		return nil
	}

	printChordSheet(text)
	return nil
}

// printChordSheet renders formatted song text with chord rows aligned above
// lyric rows.
func printChordSheet(text string) {
	for _, line := range songview.Format(text) {
		switch line.Kind {
		case songview.KindBreak:
			fmt.Println()
		case songview.KindHeading:
			fmt.Printf("[%s]\n", line.Label)
		case songview.KindLine:
			if line.Label != "" {
				fmt.Printf("[%s]\n", line.Label)
			}
			if !line.HasChords {
				fmt.Println(line.Text)
				continue
			}
			chordRow, textRow := alignGroups(line.Groups)
			fmt.Println(chordRow)
			fmt.Println(textRow)
		}
	}
}

// alignGroups lays chords and lyrics into two rows. Each chord starts above
// the text run it belongs to; when the previous chord overruns that offset
// the chord drifts right by one space rather than tearing the lyric apart.
func alignGroups(groups []songview.Group) (chordRow, textRow string) {
	var chordSB, textSB strings.Builder
	for _, g := range groups {
		chordCell := strings.Join(g.Chords, " ")
		if strings.TrimSpace(chordCell) != "" {
			start := utf8.RuneCountInString(textSB.String())
			cur := utf8.RuneCountInString(chordSB.String())
			if cur > 0 && cur >= start {
				start = cur + 1
			}
			if start > cur {
				chordSB.WriteString(strings.Repeat(" ", start-cur))
			}
			chordSB.WriteString(chordCell)
		}
		textSB.WriteString(g.Text)
	}
	return strings.TrimRight(chordSB.String(), " "), strings.TrimRight(textSB.String(), " ")
}
