// Catalog command lists downloadable databases.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/pkg/types"
)

var (
	catalogGithub bool
	catalogFilter string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List downloadable databases from the remote catalog",
	Long: `Catalog fetches the remote catalog index and lists the databases
available for download.

Use --github to discover databases published as GitHub repositories
tagged with the songidb-public topic; --filter narrows discovery to
repositories that also carry the songidb-<filter> topic.

Example:
  songidb catalog
  songidb catalog --github
  songidb catalog --github --filter worship
  songidb catalog --json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogGithub, "github", false, "discover databases published on GitHub")
	catalogCmd.Flags().StringVar(&catalogFilter, "filter", "", "extra GitHub topic filter (implies --github)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	client := newClient()

	var (
		catalog *types.Catalog
		err     error
	)
	if catalogGithub || catalogFilter != "" {
		catalog, err = client.FetchGithubCatalog(cmd.Context(), catalogFilter)
	} else {
		catalog, err = client.FetchCatalog(cmd.Context())
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(catalog)
	}

	printCatalogTable(catalog.Databases)
	return nil
}

// printCatalogTable prints catalog items in a human-readable table format.
func printCatalogTable(items []types.CatalogItem) {
	if len(items) == 0 {
		fmt.Println("No databases found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tSIZE\tDESCRIPTION")
	fmt.Fprintln(w, "--\t-----\t----\t-----------")
	for _, item := range items {
		desc := item.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Title, item.Size, desc)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d database(s)\n", len(items))
}
