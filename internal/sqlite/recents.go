package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/songiapp/songidb/pkg/types"
)

// AddRecentSong upserts a song into the recents list and prunes the list to
// the newest RecentLimit entries.
func (b *Backend) AddRecentSong(song types.Song) error {
	return b.addRecent(types.Recent{
		ID:      "song:" + song.ID,
		Kind:    types.RecentKindSong,
		AddedAt: time.Now().UTC(),
		Song:    &song,
	})
}

// AddRecentArtist upserts an artist into the recents list and prunes the
// list to the newest RecentLimit entries.
func (b *Backend) AddRecentArtist(artist types.Artist) error {
	return b.addRecent(types.Recent{
		ID:      "artist:" + artist.ID,
		Kind:    types.RecentKindArtist,
		AddedAt: time.Now().UTC(),
		Artist:  &artist,
	})
}

func (b *Backend) addRecent(r types.Recent) error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding recent %s: %w", r.ID, err)
	}

	if _, err := db.Exec(
		"INSERT OR REPLACE INTO recents (id, kind, added_at, payload) VALUES (?, ?, ?, ?)",
		r.ID, r.Kind, r.AddedAt.Format(time.RFC3339Nano), string(payload),
	); err != nil {
		return fmt.Errorf("saving recent %s: %w", r.ID, err)
	}

	return b.pruneRecents()
}

// pruneRecents evicts the oldest entries beyond the cap, strictly by
// insertion time.
func (b *Backend) pruneRecents() error {
	db, err := b.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`DELETE FROM recents WHERE id NOT IN
           (SELECT id FROM recents ORDER BY added_at DESC, id LIMIT ?)`,
		types.RecentLimit)
	if err != nil {
		return fmt.Errorf("pruning recents: %w", err)
	}
	return nil
}

// FindRecents returns all recents, newest first.
func (b *Backend) FindRecents() ([]types.Recent, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT payload FROM recents ORDER BY added_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying recents: %w", err)
	}
	defer rows.Close()

	var res []types.Recent
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var r types.Recent
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding recent: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}
