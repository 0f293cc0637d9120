package types

// CatalogItem describes one downloadable database in a remote catalog.
// URL points at a raw SongPro text file.
type CatalogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Size        string `json:"size,omitempty"`
	URL         string `json:"url"`
}

// Catalog is the remote catalog document.
type Catalog struct {
	Databases []CatalogItem `json:"databases"`
}

// Database is an installed song database. IsActive controls whether its
// songs and artists participate in listing and search; the flag is applied
// at query time and never cascaded to member rows.
type Database struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
	URL         string `json:"url,omitempty"`
	IsActive    bool   `json:"isActive"`
	SongCount   int    `json:"songCount"`
	ArtistCount int    `json:"artistCount"`
}

// FileDatabase is a user-editable local SongPro source. Data holds the raw
// multi-song text; the counts reflect the last parse of Data.
type FileDatabase struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Data        string `json:"data"`
	SongCount   int    `json:"songCount"`
	ArtistCount int    `json:"artistCount"`
}
