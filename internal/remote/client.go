// Package remote fetches song database catalogs and SongPro content over
// HTTP, and serializes destructive database operations through a FIFO
// queue. Network fetches always complete before any storage transaction
// begins.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/songiapp/songidb/internal/songpro"
	"github.com/songiapp/songidb/pkg/types"
)

// githubAPIURL is the default GitHub search endpoint for topic discovery.
const githubAPIURL = "https://api.github.com"

// githubTopicPublic marks repositories that publish a songidb database.
const githubTopicPublic = "songidb-public"

// Store is the storage surface the remote layer writes to.
type Store interface {
	SaveDatabase(meta types.Database, data *types.SongDatabase) error
	DeleteDatabase(id string) error
	FindDatabases() ([]types.Database, error)
}

// Client fetches catalogs and SongPro files. The zero-value defaults can be
// overridden for tests.
type Client struct {
	HTTPClient   *http.Client
	CatalogURL   string
	GithubAPIURL string
	Logger       *slog.Logger
}

// NewClient returns a client for the given catalog URL. An empty catalogURL
// falls back to the default catalog.
func NewClient(catalogURL string, logger *slog.Logger) *Client {
	if catalogURL == "" {
		catalogURL = types.DefaultCatalogURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
		CatalogURL:   catalogURL,
		GithubAPIURL: githubAPIURL,
		Logger:       logger,
	}
}

// FetchCatalog retrieves the configured catalog index.
func (c *Client) FetchCatalog(ctx context.Context) (*types.Catalog, error) {
	body, err := c.get(ctx, c.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	var catalog types.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &catalog, nil
}

// githubRepo is the subset of the GitHub search result this client reads.
type githubRepo struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
}

// FetchGithubCatalog discovers databases published as GitHub repositories
// tagged with the public songidb topic, optionally narrowed by an extra
// topic filter. Each repository maps to its raw index.songpro file.
func (c *Client) FetchGithubCatalog(ctx context.Context, filter string) (*types.Catalog, error) {
	queries := []string{"topic:" + githubTopicPublic}
	if filter != "" {
		queries = append(queries, "topic:songidb-"+filter)
	}

	var catalog types.Catalog
	for _, q := range queries {
		endpoint := c.GithubAPIURL + "/search/repositories?q=" + url.QueryEscape(q)
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("github search %q: %w", q, err)
		}

		var result struct {
			Items []githubRepo `json:"items"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decode github search %q: %w", q, err)
		}

		for _, repo := range result.Items {
			catalog.Databases = append(catalog.Databases, types.CatalogItem{
				ID:          fmt.Sprintf("gh_%d", repo.ID),
				Title:       repo.FullName,
				Description: repo.Description,
				URL: fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/index.songpro",
					repo.FullName, repo.DefaultBranch),
			})
		}
	}

	return &catalog, nil
}

// FetchSongPro retrieves one raw SongPro text file.
func (c *Client) FetchSongPro(ctx context.Context, fileURL string) (string, error) {
	body, err := c.get(ctx, fileURL)
	if err != nil {
		return "", fmt.Errorf("fetch songpro: %w", err)
	}
	return string(body), nil
}

// Download fetches a catalog entry's SongPro file, parses it, and saves it
// into the store. The fetch completes before the storage transaction opens.
func (c *Client) Download(ctx context.Context, item types.CatalogItem, store Store) (*types.SongDatabase, error) {
	text, err := c.FetchSongPro(ctx, item.URL)
	if err != nil {
		return nil, err
	}

	parsed := songpro.ParseDatabase(text)
	meta := types.Database{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Size:        item.Size,
		URL:         item.URL,
	}
	if err := store.SaveDatabase(meta, parsed); err != nil {
		return nil, fmt.Errorf("save database %s: %w", item.ID, err)
	}

	c.Logger.Info("downloaded database",
		"id", item.ID, "songs", len(parsed.Songs), "artists", len(parsed.Artists))
	return parsed, nil
}

// get performs one GET request and returns the response body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, rawURL)
	}
	return io.ReadAll(resp.Body)
}
