// Databases command lists installed databases.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List installed databases",
	Long: `Databases lists every installed database with its active flag and
content counts. Only active databases participate in listing and search.

Example:
  songidb databases
  songidb databases --json`,
	Args: cobra.NoArgs,
	RunE: runDatabases,
}

func runDatabases(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	databases, err := backend.FindDatabases()
	if err != nil {
		return fmt.Errorf("list databases: %w", err)
	}

	if flagJSON {
		return printJSON(databases)
	}

	printDatabaseTable(databases)
	return nil
}

// printDatabaseTable prints databases in a human-readable table format.
func printDatabaseTable(databases []types.Database) {
	if len(databases) == 0 {
		fmt.Println("No databases installed.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tACTIVE\tSONGS\tARTISTS")
	fmt.Fprintln(w, "--\t-----\t------\t-----\t-------")
	for _, db := range databases {
		active := ""
		if db.IsActive {
			active = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			db.ID, db.Title, active, db.SongCount, db.ArtistCount)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d database(s)\n", len(databases))
}
