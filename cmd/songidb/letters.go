// Letters command lists initial letters with artist counts.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lettersDB string

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "List initial letters with artist counts",
	Args:  cobra.NoArgs,
	RunE:  runLetters,
}

func init() {
	lettersCmd.Flags().StringVar(&lettersDB, "db", "", "restrict to one database id")
}

func runLetters(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	letters, err := backend.FindActiveLetters(lettersDB)
	if err != nil {
		return fmt.Errorf("list letters: %w", err)
	}

	if flagJSON {
		return printJSON(letters)
	}

	if len(letters) == 0 {
		fmt.Println("No letters found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "LETTER\tARTISTS")
	fmt.Fprintln(w, "------\t-------")
	for _, l := range letters {
		fmt.Fprintf(w, "%s\t%d\n", l.Letter, l.ArtistCount)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	return nil
}
