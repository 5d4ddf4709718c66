// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	moderncsqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	// Pragmas go in the DSN so that every pooled connection gets them.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTab persists a new tab and its initial participants in one transaction.
func (s *SQLiteStore) CreateTab(ctx context.Context, tab *models.Tab) error {
	if tab.ID == "" {
		tab.ID = uuid.New().String()
	}
	if tab.CreatedAt == 0 {
		tab.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tabs (id, name, created_at) VALUES (?, ?, ?)",
		tab.ID, tab.Name, tab.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tab: %w", err)
	}

	for i := range tab.Participants {
		p := &tab.Participants[i]
		p.TabID = tab.ID
		if err := insertParticipant(ctx, tx, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTab retrieves a tab by ID, including its participants in the order they joined.
func (s *SQLiteStore) GetTab(ctx context.Context, tabID string) (*models.Tab, error) {
	tab := &models.Tab{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM tabs WHERE id = ?",
		tabID,
	).Scan(&tab.ID, &tab.Name, &tab.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tab %s: %w", tabID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tab: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tab_id, display_name, created_at FROM participants WHERE tab_id = ? ORDER BY rowid",
		tabID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TabID, &p.DisplayName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		tab.Participants = append(tab.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return tab, nil
}

// ListTabs returns every tab, newest first. Participants are not loaded.
func (s *SQLiteStore) ListTabs(ctx context.Context) ([]*models.Tab, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM tabs ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}
	defer rows.Close()

	var tabs []*models.Tab
	for rows.Next() {
		tab := &models.Tab{}
		if err := rows.Scan(&tab.ID, &tab.Name, &tab.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tab: %w", err)
		}
		tabs = append(tabs, tab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tabs: %w", err)
	}
	return tabs, nil
}

// DeleteTab removes a tab. Participants, expenses and settlements cascade.
func (s *SQLiteStore) DeleteTab(ctx context.Context, tabID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tabs WHERE id = ?", tabID)
	if err != nil {
		return fmt.Errorf("failed to delete tab: %w", err)
	}
	return expectOneRow(res, "tab", tabID)
}

// AddParticipant adds a participant to an existing tab.
func (s *SQLiteStore) AddParticipant(ctx context.Context, participant *models.Participant) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM tabs WHERE id = ?", participant.TabID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("tab %s: %w", participant.TabID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check tab existence: %w", err)
	}

	return insertParticipant(ctx, s.db, participant)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertParticipant(ctx context.Context, db execer, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO participants (id, tab_id, display_name, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.TabID, p.DisplayName, p.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("participant %q: %w", p.DisplayName, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
