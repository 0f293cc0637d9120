package sqlite

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

const artistColumns = "id, name, letter, letter_id, song_count, database_id, database_title"

func scanArtist(row interface{ Scan(...any) error }) (types.Artist, error) {
	var a types.Artist
	err := row.Scan(&a.ID, &a.Name, &a.Letter, &a.LetterID, &a.SongCount,
		&a.DatabaseID, &a.DatabaseTitle)
	return a, err
}

// FindArtists lists artists, locale-sorted by name. An empty dbID scopes the
// listing to all active databases.
func (b *Backend) FindArtists(dbID string) ([]types.Artist, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	scope, err := b.scopeDatabaseIDs(dbID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return nil, nil
	}

	rows, err := db.Query(
		"SELECT "+artistColumns+" FROM artists WHERE database_id IN ("+placeholders(len(scope))+")",
		stringArgs(scope)...)
	if err != nil {
		return nil, fmt.Errorf("querying artists: %w", err)
	}
	defer rows.Close()

	res, err := collectArtists(rows)
	if err != nil {
		return nil, err
	}
	textutil.LocaleSort(res, func(a types.Artist) string { return a.Name })
	return res, nil
}

// FindArtistsByLetter lists artists in one letter bucket, locale-sorted by
// name, using the database-qualified letter_id grouping key.
func (b *Backend) FindArtistsByLetter(letter, dbID string) ([]types.Artist, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	scope, err := b.scopeDatabaseIDs(dbID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return nil, nil
	}

	letterIDs := make([]string, len(scope))
	for i, id := range scope {
		letterIDs[i] = id + "/" + letter
	}

	rows, err := db.Query(
		"SELECT "+artistColumns+" FROM artists WHERE letter_id IN ("+placeholders(len(letterIDs))+")",
		stringArgs(letterIDs)...)
	if err != nil {
		return nil, fmt.Errorf("querying artists by letter: %w", err)
	}
	defer rows.Close()

	res, err := collectArtists(rows)
	if err != nil {
		return nil, err
	}
	textutil.LocaleSort(res, func(a types.Artist) string { return a.Name })
	return res, nil
}

// FindActiveLetters aggregates letter buckets across the scoped databases,
// grouping by letter and summing artist counts, sorted by letter.
func (b *Backend) FindActiveLetters(dbID string) ([]types.GroupedLetter, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	scope, err := b.scopeDatabaseIDs(dbID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return nil, nil
	}

	rows, err := db.Query(
		"SELECT letter, SUM(artist_count) FROM letters WHERE database_id IN ("+
			placeholders(len(scope))+") GROUP BY letter",
		stringArgs(scope)...)
	if err != nil {
		return nil, fmt.Errorf("querying letters: %w", err)
	}
	defer rows.Close()

	var res []types.GroupedLetter
	for rows.Next() {
		var g types.GroupedLetter
		if err := rows.Scan(&g.Letter, &g.ArtistCount); err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Letter < res[j].Letter })
	return res, nil
}

// GetArtist returns one artist by id, or ErrNotFound.
func (b *Backend) GetArtist(id string) (types.Artist, error) {
	db, err := b.conn()
	if err != nil {
		return types.Artist{}, err
	}

	a, err := scanArtist(db.QueryRow(
		"SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return types.Artist{}, types.ErrNotFound
	}
	if err != nil {
		return types.Artist{}, fmt.Errorf("getting artist %s: %w", id, err)
	}
	return a, nil
}

func collectArtists(rows *sql.Rows) ([]types.Artist, error) {
	var res []types.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artist: %w", err)
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
