// Package draft buffers unsaved set entries in a local SQLite file so a
// half-filled session form survives the user navigating away. The buffer is
// keyed by (program, day, group slot) and is never part of durable domain
// state: finalizing or cancelling a session discards it.
package draft

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store holds draft entries in dir/drafts.db.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the draft database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating draft dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "drafts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		program_id TEXT NOT NULL,
		day_index  INTEGER NOT NULL,
		group_slot INTEGER NOT NULL,
		entries    TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (program_id, day_index, group_slot)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveDraft upserts the entries for one schedule position.
func (s *Store) SaveDraft(programID uuid.UUID, dayIndex, groupSlot int, entries map[uuid.UUID][]program.SetEntry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO drafts (program_id, day_index, group_slot, entries) VALUES (?, ?, ?, ?)`,
		programID.String(), dayIndex, groupSlot, string(blob),
	)
	return err
}

// LoadDraft returns the buffered entries for one schedule position, or nil
// when none are buffered.
func (s *Store) LoadDraft(programID uuid.UUID, dayIndex, groupSlot int) (map[uuid.UUID][]program.SetEntry, error) {
	var blob string
	err := s.db.QueryRow(
		`SELECT entries FROM drafts WHERE program_id = ? AND day_index = ? AND group_slot = ?`,
		programID.String(), dayIndex, groupSlot,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries map[uuid.UUID][]program.SetEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return entries, nil
}

// ClearDraft drops every buffered entry for the program, across all schedule
// positions.
func (s *Store) ClearDraft(programID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE program_id = ?`, programID.String())
	return err
}

// Close closes the draft database.
func (s *Store) Close() error {
	return s.db.Close()
}
