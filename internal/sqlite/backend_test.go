package sqlite

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songiapp/songidb/internal/songpro"
	"github.com/songiapp/songidb/pkg/types"
)

// newTestBackend creates a backend attached to a temp directory.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// saveSongPro parses SongPro text and saves it under the given database id.
func saveSongPro(t *testing.T, b *Backend, dbID, title, data string) {
	t.Helper()
	parsed := songpro.ParseDatabase(data)
	require.NoError(t, b.SaveDatabase(types.Database{ID: dbID, Title: title}, parsed))
}

// song builds one SongPro song fragment.
func song(title, artist, body string) string {
	return fmt.Sprintf("@title=%s\n@artist=%s\n\n%s\n", title, artist, body)
}

func TestFindDatabasesSorted(t *testing.T) {
	b := newTestBackend(t)
	saveSongPro(t, b, "db-z", "zebra", song("One", "Alice", "text"))
	saveSongPro(t, b, "db-a", "apple", song("Two", "Bob", "text"))

	databases, err := b.FindDatabases()
	require.NoError(t, err)
	require.Len(t, databases, 2)
	assert.Equal(t, "apple", databases[0].Title)
	assert.Equal(t, "zebra", databases[1].Title)
}

func TestSetActiveUnknownDatabase(t *testing.T) {
	b := newTestBackend(t)
	assert.ErrorIs(t, b.SetActive("missing", true), types.ErrNotFound)
}

func TestLettersAggregateAcrossDatabases(t *testing.T) {
	b := newTestBackend(t)
	saveSongPro(t, b, "db1", "first",
		song("One", "Alice", "text")+"---\n"+song("Two", "Anna", "text"))
	saveSongPro(t, b, "db2", "second", song("Three", "Arnold", "text"))

	letters, err := b.FindActiveLetters("")
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, "A", letters[0].Letter)
	assert.Equal(t, 3, letters[0].ArtistCount)

	// Scoped to one database the count shrinks.
	letters, err = b.FindActiveLetters("db2")
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, 1, letters[0].ArtistCount)
}

func TestFindArtistsByLetter(t *testing.T) {
	b := newTestBackend(t)
	saveSongPro(t, b, "db1", "first",
		song("One", "Alice", "text")+"---\n"+song("Two", "Bob", "text"))

	artists, err := b.FindArtistsByLetter("A", "")
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Alice", artists[0].Name)

	artists, err = b.FindArtistsByLetter("Z", "")
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestSearchTokenSemantics(t *testing.T) {
	b := newTestBackend(t)
	saveSongPro(t, b, "db1", "first", strings.Join([]string{
		song("Yellow Submarine", "The Beatles", "we all live in a yellow submarine"),
		song("Yesterday", "The Beatles", "all my troubles seemed so far away"),
		song("Yellow River", "Christie", "so long boy you can take my place"),
	}, "---\n"))

	t.Run("single token matches title prefix", func(t *testing.T) {
		result, err := b.Search("yellow")
		require.NoError(t, err)
		assert.True(t, result.SearchDone)
		require.Len(t, result.Songs, 2)
	})

	t.Run("all tokens must prefix-match", func(t *testing.T) {
		result, err := b.Search("yellow submarine")
		require.NoError(t, err)
		require.Len(t, result.Songs, 1)
		assert.Equal(t, "Yellow Submarine", result.Songs[0].Title)

		result, err = b.Search("yellow nothing")
		require.NoError(t, err)
		assert.Empty(t, result.Songs)
	})

	t.Run("prefix shorter than word matches", func(t *testing.T) {
		result, err := b.Search("yest")
		require.NoError(t, err)
		require.Len(t, result.Songs, 1)
		assert.Equal(t, "Yesterday", result.Songs[0].Title)
	})

	t.Run("artist names match first", func(t *testing.T) {
		result, err := b.Search("beatles")
		require.NoError(t, err)
		require.Len(t, result.Artists, 1)
		assert.Equal(t, "The Beatles", result.Artists[0].Name)
	})

	t.Run("text words match when title does not", func(t *testing.T) {
		result, err := b.Search("troubles")
		require.NoError(t, err)
		require.Len(t, result.Songs, 1)
		assert.Equal(t, "Yesterday", result.Songs[0].Title)
	})

	t.Run("text pass excludes songs already matched by title", func(t *testing.T) {
		// "yellow" appears in both the title and the text of the same song.
		result, err := b.Search("yellow")
		require.NoError(t, err)
		ids := make(map[string]int)
		for _, s := range result.Songs {
			ids[s.ID]++
		}
		for id, n := range ids {
			assert.Equal(t, 1, n, "song %s returned twice", id)
		}
	})

	t.Run("criteria tokenizing to nothing is not done", func(t *testing.T) {
		result, err := b.Search("a !")
		require.NoError(t, err)
		assert.False(t, result.SearchDone)
		assert.Empty(t, result.Songs)
	})

	t.Run("no active databases is done and empty", func(t *testing.T) {
		require.NoError(t, b.SetActive("db1", false))
		defer b.SetActive("db1", true)

		result, err := b.Search("yellow")
		require.NoError(t, err)
		assert.True(t, result.SearchDone)
		assert.Empty(t, result.Songs)
		assert.Empty(t, result.Artists)
	})
}

func TestSearchBudget(t *testing.T) {
	b := newTestBackend(t)

	var parts []string
	for i := 0; i < searchLimit+20; i++ {
		parts = append(parts, song(fmt.Sprintf("Common Song %c%c", 'a'+i/26, 'a'+i%26),
			fmt.Sprintf("Artist %c%c", 'a'+i/26, 'a'+i%26), "common words here"))
	}
	saveSongPro(t, b, "db1", "big", strings.Join(parts, "---\n"))

	result, err := b.Search("common")
	require.NoError(t, err)
	assert.True(t, result.SearchDone)
	assert.LessOrEqual(t, len(result.Artists)+len(result.Songs), searchLimit)
}

func TestRecents(t *testing.T) {
	b := newTestBackend(t)

	t.Run("newest first and re-add moves to front", func(t *testing.T) {
		require.NoError(t, b.AddRecentSong(types.Song{ID: "db1/a/one", Title: "One"}))
		require.NoError(t, b.AddRecentSong(types.Song{ID: "db1/a/two", Title: "Two"}))
		require.NoError(t, b.AddRecentArtist(types.Artist{ID: "db1/a", Name: "Alice"}))
		require.NoError(t, b.AddRecentSong(types.Song{ID: "db1/a/one", Title: "One"}))

		recents, err := b.FindRecents()
		require.NoError(t, err)
		require.Len(t, recents, 3)
		assert.Equal(t, types.RecentKindSong, recents[0].Kind)
		require.NotNil(t, recents[0].Song)
		assert.Equal(t, "One", recents[0].Song.Title)
		require.NotNil(t, recents[1].Artist)
		assert.Equal(t, "Alice", recents[1].Artist.Name)
	})

	t.Run("capped at the limit", func(t *testing.T) {
		for i := 0; i < types.RecentLimit+10; i++ {
			require.NoError(t, b.AddRecentSong(types.Song{
				ID:    fmt.Sprintf("db1/a/song-%03d", i),
				Title: fmt.Sprintf("Song %03d", i),
			}))
		}

		recents, err := b.FindRecents()
		require.NoError(t, err)
		assert.Len(t, recents, types.RecentLimit)
	})
}

func TestFileDatabases(t *testing.T) {
	b := newTestBackend(t)

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := b.CreateFileDatabase("   ")
		assert.ErrorIs(t, err, types.ErrEmptyTitle)
	})

	t.Run("create edit append publish delete", func(t *testing.T) {
		id, err := b.CreateFileDatabase("Mine")
		require.NoError(t, err)

		parsed, err := b.SaveFileDatabaseData(id, song("One", "Alice", "hello world"))
		require.NoError(t, err)
		assert.Len(t, parsed.Songs, 1)

		parsed, err = b.AppendFileDatabaseSongs(id, song("Two", "Bob", "more text"))
		require.NoError(t, err)
		assert.Len(t, parsed.Songs, 2)

		published, err := b.PublishFileDatabase(id)
		require.NoError(t, err)
		assert.Len(t, published.Songs, 2)

		db, err := b.GetDatabase(publishedID(id))
		require.NoError(t, err)
		assert.Equal(t, "Mine", db.Title)
		assert.Equal(t, 2, db.SongCount)

		// Publishing again replaces rather than duplicates.
		_, err = b.SaveFileDatabaseData(id, song("Three", "Carol", "different"))
		require.NoError(t, err)
		_, err = b.PublishFileDatabase(id)
		require.NoError(t, err)
		db, err = b.GetDatabase(publishedID(id))
		require.NoError(t, err)
		assert.Equal(t, 1, db.SongCount)

		// Deleting the file database removes the published index too.
		require.NoError(t, b.DeleteFileDatabase(id))
		_, err = b.GetDatabase(publishedID(id))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("unknown ids return ErrNotFound", func(t *testing.T) {
		_, err := b.GetFileDatabase(9999)
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = b.SaveFileDatabaseData(9999, "")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.ErrorIs(t, b.DeleteFileDatabase(9999), types.ErrNotFound)
	})
}
