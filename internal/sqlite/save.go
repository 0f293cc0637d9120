package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

// SaveDatabase persists a parsed song database under meta.ID. Every song,
// artist, and letter id is prefixed with the database id, the word indexes
// are populated, and the denormalized counts are computed. Existing content
// for the same database id is replaced; its active flag survives the
// replacement. The whole write is one transaction.
func (b *Backend) SaveDatabase(meta types.Database, data *types.SongDatabase) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	// Keep the active flag across re-downloads and upgrades.
	isActive := 1
	var prevActive sql.NullInt64
	err = db.QueryRow("SELECT is_active FROM databases WHERE id = ?", meta.ID).Scan(&prevActive)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("checking database %s: %w", meta.ID, err)
	}
	if prevActive.Valid {
		isActive = int(prevActive.Int64)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteDatabaseTx(tx, meta.ID); err != nil {
		return err
	}

	seenSongs := make(map[string]bool)
	for _, song := range data.Songs {
		id := meta.ID + "/" + song.ID
		if seenSongs[id] {
			continue
		}
		seenSongs[id] = true

		_, err := tx.Exec(
			`INSERT INTO songs (id, title, artist_id, artist_name, lang, source, text, database_id, database_title)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, song.Title, meta.ID+"/"+song.ArtistID, song.Artist, song.Lang,
			song.Source, song.Text, meta.ID, meta.Title,
		)
		if err != nil {
			return fmt.Errorf("inserting song %s: %w", id, err)
		}
		if err := insertSongWords(tx, id, "title", textutil.Tokenize(song.Title)); err != nil {
			return err
		}
		if err := insertSongWords(tx, id, "text", textutil.Tokenize(song.Text)); err != nil {
			return err
		}
	}

	seenArtists := make(map[string]bool)
	for _, artist := range data.Artists {
		id := meta.ID + "/" + artist.ID
		if seenArtists[id] {
			continue
		}
		seenArtists[id] = true

		_, err := tx.Exec(
			`INSERT INTO artists (id, name, letter, letter_id, song_count, database_id, database_title)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, artist.Name, artist.Letter, meta.ID+"/"+artist.Letter,
			artist.SongCount, meta.ID, meta.Title,
		)
		if err != nil {
			return fmt.Errorf("inserting artist %s: %w", id, err)
		}
		for _, word := range textutil.Tokenize(artist.Name) {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO artist_words (artist_id, word) VALUES (?, ?)",
				id, word,
			); err != nil {
				return fmt.Errorf("indexing artist %s: %w", id, err)
			}
		}
	}

	seenLetters := make(map[string]bool)
	for _, letter := range data.Letters {
		id := meta.ID + "/" + letter.Letter
		if seenLetters[id] {
			continue
		}
		seenLetters[id] = true

		if _, err := tx.Exec(
			"INSERT INTO letters (id, letter, database_id, artist_count) VALUES (?, ?, ?, ?)",
			id, letter.Letter, meta.ID, letter.ArtistCount,
		); err != nil {
			return fmt.Errorf("inserting letter %s: %w", id, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO databases (id, title, description, size, url, is_active, song_count, artist_count)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Title, meta.Description, meta.Size, meta.URL,
		isActive, len(data.Songs), len(data.Artists),
	); err != nil {
		return fmt.Errorf("inserting database %s: %w", meta.ID, err)
	}

	return tx.Commit()
}

// insertSongWords writes one field's word set for a song.
func insertSongWords(tx *sql.Tx, songID, field string, words []string) error {
	for _, word := range words {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO song_words (song_id, field, word) VALUES (?, ?, ?)",
			songID, field, word,
		); err != nil {
			return fmt.Errorf("indexing song %s: %w", songID, err)
		}
	}
	return nil
}

// DeleteDatabase removes a database and every dependent song, artist, letter,
// and word row in one transaction. Deleting an unknown id returns ErrNotFound.
func (b *Backend) DeleteDatabase(id string) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	var exists int
	if err := db.QueryRow("SELECT 1 FROM databases WHERE id = ?", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking database %s: %w", id, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteDatabaseTx(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteDatabaseTx cascades a database deletion inside an open transaction.
func deleteDatabaseTx(tx *sql.Tx, id string) error {
	stmts := []string{
		"DELETE FROM song_words WHERE song_id IN (SELECT id FROM songs WHERE database_id = ?)",
		"DELETE FROM artist_words WHERE artist_id IN (SELECT id FROM artists WHERE database_id = ?)",
		"DELETE FROM songs WHERE database_id = ?",
		"DELETE FROM artists WHERE database_id = ?",
		"DELETE FROM letters WHERE database_id = ?",
		"DELETE FROM databases WHERE id = ?",
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("deleting database %s: %w", id, err)
		}
	}
	return nil
}
