package types

import "errors"

// DefaultCatalogURL is the catalog index fetched when no catalog_url is
// configured.
const DefaultCatalogURL = "https://raw.githubusercontent.com/songiapp/songidb/main/index.json"

// Config holds the parameters for Backend.Attach and the remote client.
type Config struct {
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	CatalogURL string `json:"catalog_url" yaml:"catalog_url"`
}

// ErrDataDirEmpty is returned by Validate when no data directory is set.
var ErrDataDirEmpty = errors.New("data directory must not be empty")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
