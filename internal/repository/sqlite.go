// Package repository persists characters and their chat histories.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arcanus/arcanus/internal/domain"
)

// CharacterStore is the persistence interface the service layer depends on.
type CharacterStore interface {
	Create(ctx context.Context, record *domain.CharacterRecord) error
	GetByID(ctx context.Context, characterID string) (*domain.CharacterRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CharacterRecord, error)
	Update(ctx context.Context, record *domain.CharacterRecord) (bool, error)
	Delete(ctx context.Context, characterID, userID string) (bool, error)
	Close() error
}

// SQLiteStore implements CharacterStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ CharacterStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			character_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			chat_history TEXT,
			portrait_url TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_characters_user ON characters(user_id, updated_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a new character record.
func (s *SQLiteStore) Create(ctx context.Context, record *domain.CharacterRecord) error {
	data, err := json.Marshal(record.Character)
	if err != nil {
		return fmt.Errorf("failed to encode character: %w", err)
	}
	history, err := json.Marshal(record.ChatHistory)
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters (character_id, user_id, name, data, chat_history, portrait_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.Character.Name, string(data), string(history),
		nullString(record.Character.PortraitURL), record.CreatedAt, record.UpdatedAt)
	return err
}

// GetByID retrieves a character by ID. Returns nil, nil when not found.
func (s *SQLiteStore) GetByID(ctx context.Context, characterID string) (*domain.CharacterRecord, error) {
	var record domain.CharacterRecord
	var data string
	var history, portraitURL sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT character_id, user_id, data, chat_history, portrait_url, created_at, updated_at
		 FROM characters WHERE character_id = ?`,
		characterID).Scan(&record.ID, &record.UserID, &data, &history, &portraitURL, &record.CreatedAt, &record.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(data), &record.Character); err != nil {
		return nil, fmt.Errorf("failed to decode character %s: %w", characterID, err)
	}
	if history.Valid && history.String != "" {
		if err := json.Unmarshal([]byte(history.String), &record.ChatHistory); err != nil {
			return nil, fmt.Errorf("failed to decode chat history for %s: %w", characterID, err)
		}
	}
	if portraitURL.Valid {
		record.Character.PortraitURL = portraitURL.String
	}
	record.Character.ID = record.ID
	record.Character.UserID = record.UserID
	return &record, nil
}

// ListByUser lists a user's characters, most recently updated first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.CharacterRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT character_id, user_id, data, chat_history, portrait_url, created_at, updated_at
		 FROM characters WHERE user_id = ? ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CharacterRecord
	for rows.Next() {
		var record domain.CharacterRecord
		var data string
		var history, portraitURL sql.NullString
		if err := rows.Scan(&record.ID, &record.UserID, &data, &history, &portraitURL, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &record.Character); err != nil {
			return nil, fmt.Errorf("failed to decode character %s: %w", record.ID, err)
		}
		if history.Valid && history.String != "" {
			if err := json.Unmarshal([]byte(history.String), &record.ChatHistory); err != nil {
				return nil, fmt.Errorf("failed to decode chat history for %s: %w", record.ID, err)
			}
		}
		if portraitURL.Valid {
			record.Character.PortraitURL = portraitURL.String
		}
		record.Character.ID = record.ID
		record.Character.UserID = record.UserID
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update replaces the stored character and chat history. The write is scoped
// to the owning user; it reports whether a row was updated.
func (s *SQLiteStore) Update(ctx context.Context, record *domain.CharacterRecord) (bool, error) {
	data, err := json.Marshal(record.Character)
	if err != nil {
		return false, fmt.Errorf("failed to encode character: %w", err)
	}
	history, err := json.Marshal(record.ChatHistory)
	if err != nil {
		return false, fmt.Errorf("failed to encode chat history: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE characters SET name = ?, data = ?, chat_history = ?, portrait_url = ?, updated_at = ?
		 WHERE character_id = ? AND user_id = ?`,
		record.Character.Name, string(data), string(history),
		nullString(record.Character.PortraitURL), now, record.ID, record.UserID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		record.UpdatedAt = now
	}
	return affected > 0, nil
}

// Delete removes a character. The delete is scoped to the owning user; it
// reports whether a row was deleted.
func (s *SQLiteStore) Delete(ctx context.Context, characterID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM characters WHERE character_id = ? AND user_id = ?`,
		characterID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
