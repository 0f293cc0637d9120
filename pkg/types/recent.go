package types

import "time"

// Recent entry kinds.
const (
	RecentKindSong   = "song"
	RecentKindArtist = "artist"
)

// Recent is one recently opened song or artist. Entries are keyed by a
// kind-prefixed id ("song:<id>" / "artist:<id>") so reopening the same object
// moves it to the front instead of duplicating it. Exactly one of Song and
// Artist is set, matching Kind.
type Recent struct {
	ID      string    `json:"id"`
	Kind    string    `json:"type"`
	AddedAt time.Time `json:"date"`
	Song    *Song     `json:"song,omitempty"`
	Artist  *Artist   `json:"artist,omitempty"`
}

// RecentLimit is the maximum number of recents kept; the oldest entries by
// insertion time are evicted beyond this cap.
const RecentLimit = 100
