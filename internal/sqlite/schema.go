package sqlite

import "strings"

// Schema DDL. Multi-valued word indexes live in (owner id, word) side
// tables so a single song or artist row can match many search words.
const (
	createDatabases = `CREATE TABLE IF NOT EXISTS databases (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    size TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    is_active INTEGER NOT NULL DEFAULT 1,
    song_count INTEGER NOT NULL DEFAULT 0,
    artist_count INTEGER NOT NULL DEFAULT 0
);`

	createSongs = `CREATE TABLE IF NOT EXISTS songs (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    artist_id TEXT NOT NULL,
    artist_name TEXT NOT NULL,
    lang TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL,
    text TEXT NOT NULL,
    database_id TEXT NOT NULL,
    database_title TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_songs_artist ON songs(artist_id);
CREATE INDEX IF NOT EXISTS idx_songs_database ON songs(database_id);`

	createSongWords = `CREATE TABLE IF NOT EXISTS song_words (
    song_id TEXT NOT NULL,
    field TEXT NOT NULL,
    word TEXT NOT NULL,
    PRIMARY KEY (song_id, field, word)
);
CREATE INDEX IF NOT EXISTS idx_song_words_word ON song_words(word);`

	createArtists = `CREATE TABLE IF NOT EXISTS artists (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    letter TEXT NOT NULL,
    letter_id TEXT NOT NULL,
    song_count INTEGER NOT NULL DEFAULT 0,
    database_id TEXT NOT NULL,
    database_title TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_artists_database ON artists(database_id);
CREATE INDEX IF NOT EXISTS idx_artists_letter ON artists(letter_id);`

	createArtistWords = `CREATE TABLE IF NOT EXISTS artist_words (
    artist_id TEXT NOT NULL,
    word TEXT NOT NULL,
    PRIMARY KEY (artist_id, word)
);
CREATE INDEX IF NOT EXISTS idx_artist_words_word ON artist_words(word);`

	createLetters = `CREATE TABLE IF NOT EXISTS letters (
    id TEXT PRIMARY KEY,
    letter TEXT NOT NULL,
    database_id TEXT NOT NULL,
    artist_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_letters_database ON letters(database_id);`

	createFileDatabases = `CREATE TABLE IF NOT EXISTS file_databases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    data TEXT NOT NULL DEFAULT '',
    song_count INTEGER NOT NULL DEFAULT 0,
    artist_count INTEGER NOT NULL DEFAULT 0
);`

	createRecents = `CREATE TABLE IF NOT EXISTS recents (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    added_at TEXT NOT NULL,
    payload TEXT NOT NULL
);`
)

// schemaSQL returns the full schema as one script.
func schemaSQL() string {
	return strings.Join([]string{
		createDatabases,
		createSongs,
		createSongWords,
		createArtists,
		createArtistWords,
		createLetters,
		createFileDatabases,
		createRecents,
	}, "\n")
}
