package types

// Song is one parsed SongPro song. The parser produces songs with ids local
// to the parse batch; the storage backend prefixes them with the owning
// database id on save.
//
// Source is the verbatim SongPro block and is authoritative: Text is always
// re-derivable from Source by stripping attribute lines.
type Song struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ArtistID      string `json:"artistId"`
	Artist        string `json:"artist"` // display name
	Lang          string `json:"lang,omitempty"`
	Source        string `json:"source"`
	Text          string `json:"text"`
	DatabaseID    string `json:"databaseId,omitempty"`
	DatabaseTitle string `json:"databaseTitle,omitempty"`
}

// Artist is a parsed or stored artist. Letter is the first normalized
// alphabetic character of the name, or "*" for non-alphabetic names.
// SongCount is denormalized at parse/save time and not kept live afterwards.
type Artist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Letter        string `json:"letter"`
	LetterID      string `json:"letterId,omitempty"`
	SongCount     int    `json:"songCount"`
	DatabaseID    string `json:"databaseId,omitempty"`
	DatabaseTitle string `json:"databaseTitle,omitempty"`
}

// Letter is a precomputed per-database bucket of artists sharing a first
// letter, used for alphabet navigation without scanning all artists.
type Letter struct {
	ID          string `json:"id,omitempty"`
	Letter      string `json:"letter"`
	DatabaseID  string `json:"databaseId,omitempty"`
	ArtistCount int    `json:"artistCount"`
}

// GroupedLetter aggregates Letter rows with the same letter across databases.
type GroupedLetter struct {
	Letter      string `json:"letter"`
	ArtistCount int    `json:"artistCount"`
}

// SongDatabase is the result of parsing one SongPro text blob. It is produced
// once per parse and never mutated; re-parsing replaces it wholesale.
type SongDatabase struct {
	Songs   []Song
	Artists []Artist
	Letters []Letter
}

// SearchResult holds one search pass over the active databases.
// SearchDone is false when the criteria tokenized to nothing, which is
// distinct from a completed search with zero results.
type SearchResult struct {
	Artists    []Artist `json:"artists"`
	Songs      []Song   `json:"songs"`
	SearchDone bool     `json:"searchDone"`
}
