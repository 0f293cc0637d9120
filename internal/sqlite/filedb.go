package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/songiapp/songidb/internal/songpro"
	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

// filePublishPrefix derives the indexed database id of a published file
// database: "local_<n>".
const filePublishPrefix = "local_"

// CreateFileDatabase registers an empty user-editable SongPro source and
// returns its assigned numeric id.
func (b *Backend) CreateFileDatabase(title string) (int64, error) {
	db, err := b.conn()
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(title) == "" {
		return 0, types.ErrEmptyTitle
	}

	res, err := db.Exec(
		"INSERT INTO file_databases (title, data) VALUES (?, '')", title)
	if err != nil {
		return 0, fmt.Errorf("creating file database: %w", err)
	}
	return res.LastInsertId()
}

// GetFileDatabase returns one file database by id, or ErrNotFound.
func (b *Backend) GetFileDatabase(id int64) (types.FileDatabase, error) {
	db, err := b.conn()
	if err != nil {
		return types.FileDatabase{}, err
	}

	var fd types.FileDatabase
	err = db.QueryRow(
		"SELECT id, title, data, song_count, artist_count FROM file_databases WHERE id = ?",
		id,
	).Scan(&fd.ID, &fd.Title, &fd.Data, &fd.SongCount, &fd.ArtistCount)
	if err == sql.ErrNoRows {
		return types.FileDatabase{}, types.ErrNotFound
	}
	if err != nil {
		return types.FileDatabase{}, fmt.Errorf("getting file database %d: %w", id, err)
	}
	return fd, nil
}

// FindFileDatabases lists all file databases, locale-sorted by title.
func (b *Backend) FindFileDatabases() ([]types.FileDatabase, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT id, title, data, song_count, artist_count FROM file_databases")
	if err != nil {
		return nil, fmt.Errorf("querying file databases: %w", err)
	}
	defer rows.Close()

	var res []types.FileDatabase
	for rows.Next() {
		var fd types.FileDatabase
		if err := rows.Scan(&fd.ID, &fd.Title, &fd.Data, &fd.SongCount, &fd.ArtistCount); err != nil {
			return nil, err
		}
		res = append(res, fd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	textutil.LocaleSort(res, func(fd types.FileDatabase) string { return fd.Title })
	return res, nil
}

// SaveFileDatabaseData replaces the raw SongPro content of a file database
// and refreshes its parsed counts. Returns the parse result so callers can
// surface the detected song and artist counts as a save confirmation.
func (b *Backend) SaveFileDatabaseData(id int64, data string) (*types.SongDatabase, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	parsed := songpro.ParseDatabase(data)
	res, err := db.Exec(
		"UPDATE file_databases SET data = ?, song_count = ?, artist_count = ? WHERE id = ?",
		data, len(parsed.Songs), len(parsed.Artists), id)
	if err != nil {
		return nil, fmt.Errorf("saving file database %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, types.ErrNotFound
	}
	return parsed, nil
}

// AppendFileDatabaseSongs appends new song sources to a file database,
// inserting a separator line between the existing content and the addition.
func (b *Backend) AppendFileDatabaseSongs(id int64, source string) (*types.SongDatabase, error) {
	fd, err := b.GetFileDatabase(id)
	if err != nil {
		return nil, err
	}

	data := fd.Data
	if strings.TrimSpace(data) != "" {
		data = strings.TrimRight(data, "\n") + "\n---\n"
	}
	data += source
	return b.SaveFileDatabaseData(id, data)
}

// DeleteFileDatabase removes a file database and, when it has been
// published, its indexed content as well.
func (b *Backend) DeleteFileDatabase(id int64) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM file_databases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting file database %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := b.DeleteDatabase(publishedID(id)); err != nil && err != types.ErrNotFound {
		return err
	}
	return nil
}

// PublishFileDatabase parses the file database's content and saves it into
// the indexed collections under the "local_<n>" id. Publishing again
// replaces the previously indexed rows.
func (b *Backend) PublishFileDatabase(id int64) (*types.SongDatabase, error) {
	fd, err := b.GetFileDatabase(id)
	if err != nil {
		return nil, err
	}

	parsed := songpro.ParseDatabase(fd.Data)
	meta := types.Database{
		ID:    publishedID(id),
		Title: fd.Title,
	}
	if err := b.SaveDatabase(meta, parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func publishedID(id int64) string {
	return filePublishPrefix + strconv.FormatInt(id, 10)
}
