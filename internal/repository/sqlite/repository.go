package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/repository"
)

// Repository implements repository.GroupRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(databasePath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// SaveGroup persists a group record under its code. Codes are freshly
// generated per request, so an existing row is a programming error and
// surfaces as a constraint violation.
func (r *Repository) SaveGroup(ctx context.Context, code string, record *domain.GroupRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode group record: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO groups (code, record, created_at) VALUES (?, ?, ?)",
		code, string(value), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group record by code
func (r *Repository) GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT record FROM groups WHERE code = ?", code).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	var record domain.GroupRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("failed to decode group record: %w", err)
	}
	return &record, nil
}

// SaveSession persists a token set under a session key with an expiration
// TTL
func (r *Repository) SaveSession(ctx context.Context, key string, tokens domain.TokenSet, ttl time.Duration) error {
	value, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to encode session tokens: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO sessions (key, tokens, expires_at) VALUES (?, ?, ?)",
		key, string(value), time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a live session token set. Expired rows are invisible
// and purged lazily.
func (r *Repository) GetSession(ctx context.Context, key string) (*domain.TokenSet, bool, error) {
	var value string
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx,
		"SELECT tokens, expires_at FROM sessions WHERE key = ?", key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get session: %w", err)
	}

	if !expiresAt.After(time.Now()) {
		_ = r.DeleteSession(ctx, key)
		return nil, false, nil
	}

	var tokens domain.TokenSet
	if err := json.Unmarshal([]byte(value), &tokens); err != nil {
		return nil, false, fmt.Errorf("failed to decode session tokens: %w", err)
	}
	return &tokens, true, nil
}

// DeleteSession removes a session record
func (r *Repository) DeleteSession(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ensure Repository implements the interface
var _ repository.GroupRepository = (*Repository)(nil)
