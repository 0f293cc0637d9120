package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

const databaseColumns = "id, title, description, size, url, is_active, song_count, artist_count"

// scanDatabase hydrates one databases row.
func scanDatabase(row interface{ Scan(...any) error }) (types.Database, error) {
	var d types.Database
	var active int
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Size, &d.URL,
		&active, &d.SongCount, &d.ArtistCount)
	d.IsActive = active != 0
	return d, err
}

// FindDatabases returns every installed database, locale-sorted by title.
func (b *Backend) FindDatabases() ([]types.Database, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + databaseColumns + " FROM databases")
	if err != nil {
		return nil, fmt.Errorf("querying databases: %w", err)
	}
	defer rows.Close()

	var res []types.Database
	for rows.Next() {
		d, err := scanDatabase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning database: %w", err)
		}
		res = append(res, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	textutil.LocaleSort(res, func(d types.Database) string { return d.Title })
	return res, nil
}

// GetDatabase returns one database by id, or ErrNotFound.
func (b *Backend) GetDatabase(id string) (types.Database, error) {
	db, err := b.conn()
	if err != nil {
		return types.Database{}, err
	}

	d, err := scanDatabase(db.QueryRow(
		"SELECT "+databaseColumns+" FROM databases WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return types.Database{}, types.ErrNotFound
	}
	if err != nil {
		return types.Database{}, fmt.Errorf("getting database %s: %w", id, err)
	}
	return d, nil
}

// SetActive flips the database-level active flag. The flag is a query-time
// filter; member songs and artists are not touched.
func (b *Backend) SetActive(id string, isActive bool) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	active := 0
	if isActive {
		active = 1
	}
	res, err := db.Exec("UPDATE databases SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return fmt.Errorf("updating database %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ActiveDatabaseIDs returns the ids of all active databases.
func (b *Backend) ActiveDatabaseIDs() ([]string, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id FROM databases WHERE is_active = 1")
	if err != nil {
		return nil, fmt.Errorf("querying active databases: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scopeDatabaseIDs resolves a database filter: a concrete id scopes to that
// database, an empty id scopes to all active ones.
func (b *Backend) scopeDatabaseIDs(dbID string) ([]string, error) {
	if dbID != "" {
		return []string{dbID}, nil
	}
	return b.ActiveDatabaseIDs()
}
