package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/riji/internal/migration"
	"github.com/julianstephens/riji/internal/models"
	"github.com/julianstephens/riji/migrations"
)

// SQLiteStore keeps entries in a single table, ordered by a position column
// so the stored sequence survives a round trip unchanged.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.FS)
	if _, err := runner.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps writes serialized and avoids SQLITE_BUSY inside a process
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

// connect opens an existing database and brings its schema up to date
func (s *SQLiteStore) connect() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.FS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() ([]models.Entry, error) {
	if err := s.connect(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, title, tags, category, content, mood, date
		FROM entries
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		var tagsJSON string
		var mood string
		if err := rows.Scan(&e.ID, &e.Title, &tagsJSON, &e.Category, &e.Content, &mood, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for entry %d: %w", e.ID, err)
		}
		e.Mood = models.Mood(mood)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

// Save replaces every row in one transaction
func (s *SQLiteStore) Save(entries []models.Entry) (err error) {
	if err := s.connect(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (id, position, title, tags, category, content, mood, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, jsonErr := json.Marshal(tags)
		if jsonErr != nil {
			return fmt.Errorf("failed to encode tags for entry %d: %w", e.ID, jsonErr)
		}
		if _, err = stmt.Exec(e.ID, i, e.Title, string(tagsJSON), e.Category, e.Content, string(e.Mood), e.Date); err != nil {
			return fmt.Errorf("failed to save entry %d: %w", e.ID, err)
		}
	}

	if _, err = tx.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES ('updated_at', ?)",
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// Metadata returns a value from the metadata table, "" when unset
func (s *SQLiteStore) Metadata(key string) (string, error) {
	if err := s.connect(); err != nil {
		return "", err
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying connection, e.g. for VACUUM INTO backups
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
