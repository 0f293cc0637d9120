package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songiapp/songidb/pkg/types"
)

// fakeStore records saves and deletes for assertions. SaveDatabase can be
// made to block or fail per database id.
type fakeStore struct {
	mu        sync.Mutex
	saved     []types.Database
	deleted   []string
	databases []types.Database
	failIDs   map[string]bool
	blockCh   chan struct{}
}

func (s *fakeStore) SaveDatabase(meta types.Database, data *types.SongDatabase) error {
	if s.blockCh != nil {
		<-s.blockCh
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[meta.ID] {
		return fmt.Errorf("disk full")
	}
	s.saved = append(s.saved, meta)
	return nil
}

func (s *fakeStore) DeleteDatabase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) FindDatabases() ([]types.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.databases, nil
}

func (s *fakeStore) savedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.saved))
	for i, db := range s.saved {
		ids[i] = db.ID
	}
	return ids
}

const testSongPro = "@title=One\n@artist=Alice\n\nHello [C]world\n"

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"databases":[{"id":"db1","title":"First","url":"https://example.com/db1.songpro"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Databases, 1)
	assert.Equal(t, "db1", catalog.Databases[0].ID)
	assert.Equal(t, "First", catalog.Databases[0].Title)
}

func TestFetchCatalogErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.FetchCatalog(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		_, err := client.FetchCatalog(context.Background())
		assert.Error(t, err)
	})
}

func TestFetchGithubCatalog(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"items":[{"id":42,"full_name":"alice/songs","description":"d","default_branch":"main"}]}`)
	}))
	defer server.Close()

	client := NewClient("", nil)
	client.GithubAPIURL = server.URL

	catalog, err := client.FetchGithubCatalog(context.Background(), "worship")
	require.NoError(t, err)

	assert.Equal(t, []string{"topic:songidb-public", "topic:songidb-worship"}, queries)
	require.Len(t, catalog.Databases, 2)
	assert.Equal(t, "gh_42", catalog.Databases[0].ID)
	assert.Equal(t, "alice/songs", catalog.Databases[0].Title)
	assert.Equal(t, "https://raw.githubusercontent.com/alice/songs/main/index.songpro",
		catalog.Databases[0].URL)
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testSongPro)
	}))
	defer server.Close()

	client := NewClient("", nil)
	store := &fakeStore{}
	item := types.CatalogItem{ID: "db1", Title: "First", URL: server.URL + "/db1.songpro"}

	parsed, err := client.Download(context.Background(), item, store)
	require.NoError(t, err)
	assert.Len(t, parsed.Songs, 1)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "db1", store.saved[0].ID)
	assert.Equal(t, item.URL, store.saved[0].URL)
}

func TestUpgradeAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.songpro" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, testSongPro)
	}))
	defer server.Close()

	client := NewClient("", nil)
	store := &fakeStore{
		databases: []types.Database{
			{ID: "good", Title: "Good", URL: server.URL + "/good.songpro"},
			{ID: "bad", Title: "Bad", URL: server.URL + "/bad.songpro"},
			{ID: "local_1", Title: "Published"}, // no origin, skipped
		},
	}

	results, err := client.UpgradeAll(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := make(map[string]UpgradeResult)
	for _, r := range results {
		byID[r.DatabaseID] = r
	}
	assert.NoError(t, byID["good"].Err)
	assert.Equal(t, 1, byID["good"].SongCount)
	assert.Error(t, byID["bad"].Err)

	// Only the successful fetch reached the store.
	assert.Equal(t, []string{"good"}, store.savedIDs())
}

func TestQueueProcessesInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testSongPro)
	}))
	defer server.Close()

	client := NewClient("", nil)
	store := &fakeStore{}
	queue := NewQueue(client, store, nil)

	first := queue.EnqueueDownload(types.CatalogItem{ID: "db1", URL: server.URL})
	second := queue.EnqueueDownload(types.CatalogItem{ID: "db2", URL: server.URL})
	require.NotEmpty(t, first)
	require.NotEmpty(t, second)

	var done []string
	for event := range queue.Events() {
		if event.State == EventDone {
			done = append(done, event.DatabaseID)
			if len(done) == 2 {
				break
			}
		}
		if event.State == EventFailed {
			t.Fatalf("unexpected failure: %v", event.Err)
		}
	}
	queue.Close()

	assert.Equal(t, []string{"db1", "db2"}, done)
	assert.Equal(t, []string{"db1", "db2"}, store.savedIDs())
}

func TestQueueCancelPending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testSongPro)
	}))
	defer server.Close()

	client := NewClient("", nil)
	release := make(chan struct{})
	store := &fakeStore{blockCh: release}
	queue := NewQueue(client, store, nil)

	queue.EnqueueDownload(types.CatalogItem{ID: "db1", URL: server.URL})

	// Wait until the first item is in flight, then queue and cancel a
	// second one.
	var started bool
	for event := range queue.Events() {
		if event.State == EventStarted && event.DatabaseID == "db1" {
			started = true
			break
		}
	}
	require.True(t, started)

	second := queue.EnqueueDownload(types.CatalogItem{ID: "db2", URL: server.URL})
	assert.True(t, queue.Cancel(second))
	assert.False(t, queue.Cancel(second), "double cancel reports false")
	assert.False(t, queue.Cancel("unknown"))

	close(release)

	var done, cancelled []string
	for event := range queue.Events() {
		switch event.State {
		case EventDone:
			done = append(done, event.DatabaseID)
		case EventCancelled:
			cancelled = append(cancelled, event.DatabaseID)
		}
		if len(done) == 1 && len(cancelled) == 1 {
			break
		}
	}
	queue.Close()

	assert.Equal(t, []string{"db1"}, done)
	assert.Equal(t, []string{"db2"}, cancelled)
	assert.Equal(t, []string{"db1"}, store.savedIDs())
}

func TestQueueClose(t *testing.T) {
	client := NewClient("", nil)
	queue := NewQueue(client, &fakeStore{}, nil)

	queue.Close()
	assert.Empty(t, queue.EnqueueDownload(types.CatalogItem{ID: "db1"}),
		"enqueue after close returns empty id")
	assert.False(t, queue.Cancel("no-such-item"),
		"cancel after close returns false without sending")

	// Close is idempotent.
	queue.Close()

	_, open := <-queue.Events()
	assert.False(t, open, "events channel closed after Close")
}