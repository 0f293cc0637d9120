package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/songiapp/songidb/internal/songpro"
	"github.com/songiapp/songidb/pkg/types"
)

// UpgradeResult reports the outcome of re-downloading one installed
// database.
type UpgradeResult struct {
	DatabaseID  string
	Title       string
	SongCount   int
	ArtistCount int
	Err         error
}

// UpgradeAll re-fetches every installed database that has a remote origin
// and replaces its content. All fetches and parses complete before any
// write, so a mid-run network failure never leaves a database half
// replaced. Databases that fail to fetch keep their current content and
// are reported with a non-nil Err.
func (c *Client) UpgradeAll(ctx context.Context, store Store) ([]UpgradeResult, error) {
	databases, err := store.FindDatabases()
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	type fetched struct {
		meta   types.Database
		parsed *types.SongDatabase
	}

	results := make([]UpgradeResult, 0, len(databases))
	var ready []fetched
	for _, db := range databases {
		if db.URL == "" {
			// Published file databases have no remote origin.
			continue
		}

		text, err := c.FetchSongPro(ctx, db.URL)
		if err != nil {
			results = append(results, UpgradeResult{
				DatabaseID: db.ID,
				Title:      db.Title,
				Err:        err,
			})
			continue
		}
		parsed := songpro.ParseDatabase(text)
		if len(parsed.Songs) == 0 {
			results = append(results, UpgradeResult{
				DatabaseID: db.ID,
				Title:      db.Title,
				Err:        fmt.Errorf("no valid songs in %s", db.URL),
			})
			continue
		}
		ready = append(ready, fetched{meta: db, parsed: parsed})
	}

	for _, f := range ready {
		result := UpgradeResult{
			DatabaseID:  f.meta.ID,
			Title:       f.meta.Title,
			SongCount:   len(f.parsed.Songs),
			ArtistCount: len(f.parsed.Artists),
		}
		if err := store.SaveDatabase(f.meta, f.parsed); err != nil {
			result.Err = err
			result.SongCount = 0
			result.ArtistCount = 0
		}
		results = append(results, result)
	}

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.DatabaseID)
		}
	}
	if len(failed) > 0 {
		c.Logger.Warn("upgrade finished with failures", "failed", strings.Join(failed, ", "))
	} else {
		c.Logger.Info("upgrade finished", "databases", len(results))
	}

	return results, nil
}
