// Download command installs a database from the catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/internal/remote"
	"github.com/songiapp/songidb/pkg/types"
)

var (
	downloadGithub bool
	downloadFilter string
)

var downloadCmd = &cobra.Command{
	Use:   "download <catalog-id>",
	Short: "Download and index a database from the catalog",
	Long: `Download fetches a catalog entry's SongPro file, parses it, and
indexes it locally. Re-downloading an installed database replaces its
content and keeps its active flag.

Example:
  songidb download cz-hymns
  songidb download gh_812345 --github`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadGithub, "github", false, "look the id up in the GitHub catalog")
	downloadCmd.Flags().StringVar(&downloadFilter, "filter", "", "extra GitHub topic filter (implies --github)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	catalogID := args[0]
	client := newClient()

	var (
		catalog *types.Catalog
		err     error
	)
	if downloadGithub || downloadFilter != "" {
		catalog, err = client.FetchGithubCatalog(cmd.Context(), downloadFilter)
	} else {
		catalog, err = client.FetchCatalog(cmd.Context())
	}
	if err != nil {
		return err
	}

	var item *types.CatalogItem
	for i := range catalog.Databases {
		if catalog.Databases[i].ID == catalogID {
			item = &catalog.Databases[i]
			break
		}
	}
	if item == nil {
		fmt.Fprintf(os.Stderr, "database %q not found in catalog\n", catalogID)
		os.Exit(exitUserError)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	queue := remote.NewQueue(client, backend, newLogger())
	itemID := queue.EnqueueDownload(*item)

	var result remote.Event
	for event := range queue.Events() {
		if event.ItemID != itemID || event.State == remote.EventStarted {
			continue
		}
		result = event
		break
	}
	queue.Close()

	if result.State == remote.EventFailed {
		return fmt.Errorf("download %s: %w", catalogID, result.Err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"id":          result.DatabaseID,
			"title":       result.Title,
			"songCount":   result.SongCount,
			"artistCount": result.ArtistCount,
		})
	}

	fmt.Printf("Downloaded %s: %d song(s), %d artist(s)\n",
		result.Title, result.SongCount, result.ArtistCount)
	return nil
}
