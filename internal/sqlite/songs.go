package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

const songColumns = "id, title, artist_id, artist_name, lang, source, text, database_id, database_title"

func scanSong(row interface{ Scan(...any) error }) (types.Song, error) {
	var s types.Song
	err := row.Scan(&s.ID, &s.Title, &s.ArtistID, &s.Artist, &s.Lang,
		&s.Source, &s.Text, &s.DatabaseID, &s.DatabaseTitle)
	return s, err
}

// FindSongsByArtist lists an artist's songs, locale-sorted by title.
func (b *Backend) FindSongsByArtist(artistID string) ([]types.Song, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT "+songColumns+" FROM songs WHERE artist_id = ?", artistID)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	res, err := collectSongs(rows)
	if err != nil {
		return nil, err
	}
	textutil.LocaleSort(res, func(s types.Song) string { return s.Title })
	return res, nil
}

// GetSong returns one song by id, or ErrNotFound.
func (b *Backend) GetSong(id string) (types.Song, error) {
	db, err := b.conn()
	if err != nil {
		return types.Song{}, err
	}

	s, err := scanSong(db.QueryRow(
		"SELECT "+songColumns+" FROM songs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return types.Song{}, types.ErrNotFound
	}
	if err != nil {
		return types.Song{}, fmt.Errorf("getting song %s: %w", id, err)
	}
	return s, nil
}

func collectSongs(rows *sql.Rows) ([]types.Song, error) {
	var res []types.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning song: %w", err)
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
