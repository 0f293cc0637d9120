// Upgrade command re-downloads every installed database.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/internal/remote"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Re-download all installed databases from their origins",
	Long: `Upgrade re-fetches every installed database from its origin URL and
replaces its content. Databases that fail to fetch keep their current
content. Published file databases have no origin and are skipped.

Example:
  songidb upgrade
  songidb upgrade --json`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	results, err := newClient().UpgradeAll(cmd.Context(), backend)
	if err != nil {
		return err
	}

	if flagJSON {
		type jsonResult struct {
			DatabaseID  string `json:"databaseId"`
			Title       string `json:"title"`
			SongCount   int    `json:"songCount"`
			ArtistCount int    `json:"artistCount"`
			Error       string `json:"error,omitempty"`
		}
		out := make([]jsonResult, len(results))
		for i, r := range results {
			out[i] = jsonResult{
				DatabaseID:  r.DatabaseID,
				Title:       r.Title,
				SongCount:   r.SongCount,
				ArtistCount: r.ArtistCount,
			}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		return printJSON(out)
	}

	failed := printUpgradeTable(results)
	if failed > 0 {
		return fmt.Errorf("%d database(s) failed to upgrade", failed)
	}
	return nil
}

// printUpgradeTable prints upgrade results and returns the failure count.
func printUpgradeTable(results []remote.UpgradeResult) int {
	if len(results) == 0 {
		fmt.Println("No databases to upgrade.")
		return 0
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	failed := 0
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tSONGS\tARTISTS")
	fmt.Fprintln(w, "--\t-----\t------\t-----\t-------")
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "failed: " + r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			r.DatabaseID, r.Title, status, r.SongCount, r.ArtistCount)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	return failed
}
