// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tags

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

// SQLite stores the mapping in an author_tags table. Position keeps the
// per-author insertion order.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS author_tags (
		author TEXT NOT NULL,
		tag TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (author, tag)
	)`)
	return err
}

// Load reads every row into a mapping.
func (s *SQLite) Load() (types.TagMapping, error) {
	rows, err := s.db.Query(`SELECT author, tag FROM author_tags ORDER BY author, position`)
	if err != nil {
		return nil, fmt.Errorf("querying author tags: %w", err)
	}
	defer rows.Close()

	m := types.TagMapping{}
	for rows.Next() {
		var author, tag string
		if err := rows.Scan(&author, &tag); err != nil {
			return nil, fmt.Errorf("scanning author tag: %w", err)
		}
		m[author] = append(m[author], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading author tags: %w", err)
	}
	return m, nil
}

// Save replaces the stored mapping with m in one transaction.
func (s *SQLite) Save(m types.TagMapping) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM author_tags`); err != nil {
		return fmt.Errorf("clearing author tags: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO author_tags (author, tag, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for author, tags := range m {
		for i, tag := range tags {
			if _, err := stmt.Exec(author, tag, i); err != nil {
				return fmt.Errorf("inserting tag %q for %q: %w", tag, author, err)
			}
		}
	}

	return tx.Commit()
}
