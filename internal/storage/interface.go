package storage

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/julianstephens/riji/internal/models"
)

// ErrNotInitialized is returned by Load when the backing file is missing
var ErrNotInitialized = errors.New("storage not initialized, run 'riji init' first")

// Provider persists the full entry sequence. Every Save replaces what was
// stored before; there are no partial writes.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Entries
	Load() ([]models.Entry, error)
	Save([]models.Entry) error

	// Utils
	GetConfigPath() string
}

// Open picks the provider for path by extension: .json files hold a JSON
// array, anything else is a SQLite database.
func Open(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
