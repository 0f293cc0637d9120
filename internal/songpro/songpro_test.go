package songpro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatabaseSingleSong(t *testing.T) {
	db := ParseDatabase("@title=Test\n@artist=A B\n\nHello [C]world\n")

	require.Len(t, db.Songs, 1)
	song := db.Songs[0]
	assert.Equal(t, "a-b/test", song.ID)
	assert.Equal(t, "Test", song.Title)
	assert.Equal(t, "A B", song.Artist)
	assert.Equal(t, "a-b", song.ArtistID)
	assert.Equal(t, "Hello [C]world", song.Text)

	require.Len(t, db.Artists, 1)
	artist := db.Artists[0]
	assert.Equal(t, "a-b", artist.ID)
	assert.Equal(t, "A B", artist.Name)
	assert.Equal(t, "A", artist.Letter)
	assert.Equal(t, 1, artist.SongCount)

	require.Len(t, db.Letters, 1)
	assert.Equal(t, "A", db.Letters[0].Letter)
	assert.Equal(t, 1, db.Letters[0].ArtistCount)
}

func TestParseDatabaseMultipleSongs(t *testing.T) {
	data := strings.Join([]string{
		"@title=One",
		"@artist=Alice",
		"",
		"first body",
		"---",
		"@title=Two",
		"@artist=Bob",
		"",
		"second body",
		"----",
		"@title=Three",
		"@artist=Alice",
		"",
		"third body",
	}, "\n")

	db := ParseDatabase(data)

	require.Len(t, db.Songs, 3)
	assert.Equal(t, "alice/one", db.Songs[0].ID)
	assert.Equal(t, "bob/two", db.Songs[1].ID)
	assert.Equal(t, "alice/three", db.Songs[2].ID)

	require.Len(t, db.Artists, 2)
	assert.Equal(t, "alice", db.Artists[0].ID)
	assert.Equal(t, 2, db.Artists[0].SongCount)
	assert.Equal(t, "bob", db.Artists[1].ID)
	assert.Equal(t, 1, db.Artists[1].SongCount)
}

func TestParseDatabaseDuplicateTitles(t *testing.T) {
	data := strings.Join([]string{
		"@title=Same",
		"@artist=Alice",
		"",
		"one",
		"---",
		"@title=Same",
		"@artist=Alice",
		"",
		"two",
		"---",
		"@title=Same",
		"@artist=Alice",
		"",
		"three",
	}, "\n")

	db := ParseDatabase(data)

	require.Len(t, db.Songs, 3)
	assert.Equal(t, "alice/same", db.Songs[0].ID)
	assert.Equal(t, "alice/same-2", db.Songs[1].ID)
	assert.Equal(t, "alice/same-3", db.Songs[2].ID)
}

func TestParseDatabaseDropsInvalidFragments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing title", data: "@artist=Alice\n\nbody\n"},
		{name: "missing artist", data: "@title=One\n\nbody\n"},
		{name: "empty body", data: "@title=One\n@artist=Alice\n\n   \n"},
		{name: "no attributes", data: "just some text\n"},
		{name: "empty input", data: ""},
		{name: "separators only", data: "---\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := ParseDatabase(tt.data)
			assert.Empty(t, db.Songs)
			assert.Empty(t, db.Artists)
		})
	}
}

func TestParseDatabaseAttributeHandling(t *testing.T) {
	t.Run("bang prefix and extra attributes", func(t *testing.T) {
		db := ParseDatabase("!title=Bang\n@artist=Alice\n@lang=cs\n\nbody\n")
		require.Len(t, db.Songs, 1)
		assert.Equal(t, "Bang", db.Songs[0].Title)
		assert.Equal(t, "cs", db.Songs[0].Lang)
	})

	t.Run("attribute-looking line inside body stays body", func(t *testing.T) {
		db := ParseDatabase("@title=One\n@artist=Alice\n\nbody\n@chorus=not an attr\n")
		require.Len(t, db.Songs, 1)
		assert.Contains(t, db.Songs[0].Text, "@chorus=not an attr")
	})

	t.Run("value whitespace trimmed", func(t *testing.T) {
		db := ParseDatabase("@title=  Padded  \n@artist=Alice\n\nbody\n")
		require.Len(t, db.Songs, 1)
		assert.Equal(t, "Padded", db.Songs[0].Title)
	})
}

func TestParseDatabaseSentinelIDs(t *testing.T) {
	db := ParseDatabase("@title=***\n@artist=###\n\nbody\n")

	require.Len(t, db.Songs, 1)
	assert.Equal(t, "no-artist/no-title", db.Songs[0].ID)
	require.Len(t, db.Artists, 1)
	assert.Equal(t, "no-artist", db.Artists[0].ID)
	assert.Equal(t, "*", db.Artists[0].Letter)
}

func TestParseDatabaseSourcePreserved(t *testing.T) {
	data := "@title=One\n@artist=Alice\n\nHello [C]world\n"
	db := ParseDatabase(data)

	require.Len(t, db.Songs, 1)
	source := db.Songs[0].Source
	assert.Contains(t, source, "@title=One")
	assert.Contains(t, source, "Hello [C]world")
}

func TestParseParts(t *testing.T) {
	t.Run("round trips a stored source", func(t *testing.T) {
		data := "@title=One\n@artist=Alice\n\nHello [C]world\n"
		db := ParseDatabase(data)
		require.Len(t, db.Songs, 1)

		attrs, text := ParseParts(db.Songs[0].Source)
		assert.Equal(t, "One", attrs[AttrTitle])
		assert.Equal(t, "Alice", attrs[AttrArtist])
		assert.Equal(t, db.Songs[0].Text, strings.TrimSpace(text))
	})

	t.Run("stops at separator", func(t *testing.T) {
		attrs, text := ParseParts("@title=One\n\nbody\n---\n@title=Two\n")
		assert.Equal(t, "One", attrs[AttrTitle])
		assert.NotContains(t, text, "Two")
	})
}
