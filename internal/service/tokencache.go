package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/repository"
)

// sessionCache gives extracted token sets a short second life: tokens are
// persisted under a random "session:<uuid>" key with an expiration TTL,
// and the projectID→key association lives only in this process. While a
// session is live, resolution can skip the page fetch and go straight to
// the query call. Cache problems are logged and degrade to the full
// pipeline, never to a failed item.
type sessionCache struct {
	repo   repository.GroupRepository
	ttl    time.Duration
	logger *zap.Logger

	mu   sync.Mutex
	keys map[string]string // projectID -> session key
}

func newSessionCache(repo repository.GroupRepository, ttl time.Duration, logger *zap.Logger) *sessionCache {
	return &sessionCache{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		keys:   make(map[string]string),
	}
}

// lookup returns live cached tokens for a project, when present.
func (c *sessionCache) lookup(ctx context.Context, projectID string) (domain.TokenSet, bool) {
	c.mu.Lock()
	key, ok := c.keys[projectID]
	c.mu.Unlock()
	if !ok {
		return domain.TokenSet{}, false
	}

	tokens, found, err := c.repo.GetSession(ctx, key)
	if err != nil {
		c.logger.Warn("session lookup failed", zap.String("project_id", projectID), zap.Error(err))
		return domain.TokenSet{}, false
	}
	if !found {
		// expired or purged; drop the stale association
		c.mu.Lock()
		delete(c.keys, projectID)
		c.mu.Unlock()
		return domain.TokenSet{}, false
	}

	return *tokens, true
}

// store saves freshly extracted tokens under a new session key.
func (c *sessionCache) store(ctx context.Context, projectID string, tokens domain.TokenSet) {
	key := "session:" + uuid.NewString()

	if err := c.repo.SaveSession(ctx, key, tokens, c.ttl); err != nil {
		c.logger.Warn("session save failed", zap.String("project_id", projectID), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.keys[projectID] = key
	c.mu.Unlock()
}

// invalidate discards a project's session after a failure with its tokens.
func (c *sessionCache) invalidate(ctx context.Context, projectID string) {
	c.mu.Lock()
	key, ok := c.keys[projectID]
	delete(c.keys, projectID)
	c.mu.Unlock()
	if !ok {
		return
	}

	if err := c.repo.DeleteSession(ctx, key); err != nil {
		c.logger.Warn("session delete failed", zap.String("project_id", projectID), zap.Error(err))
	}
}
