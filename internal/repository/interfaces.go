package repository

import (
	"context"
	"errors"
	"time"

	"github.com/entrygroup/gallery/internal/domain"
)

// ErrNotFound is returned when a requested key is absent from the store
// (or, for sessions, already expired).
var ErrNotFound = errors.New("key not found")

// GroupRepository defines the persistent key-value surface the gallery
// needs: group records keyed by their 8-character code, and short-lived
// session-token records keyed by "session:<random>" strings. Values are
// stored as JSON-encoded text.
type GroupRepository interface {
	// SaveGroup persists a group record under its code
	SaveGroup(ctx context.Context, code string, record *domain.GroupRecord) error

	// GetGroup retrieves a group record by code
	GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error)

	// SaveSession persists a token set under a session key with an
	// expiration TTL
	SaveSession(ctx context.Context, key string, tokens domain.TokenSet, ttl time.Duration) error

	// GetSession retrieves a live (unexpired) session token set; the bool
	// reports presence
	GetSession(ctx context.Context, key string) (*domain.TokenSet, bool, error)

	// DeleteSession removes a session record
	DeleteSession(ctx context.Context, key string) error

	// Close closes the repository connection
	Close() error
}
