package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/repository"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "gallery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestSaveAndGetGroup(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	record := &domain.GroupRecord{
		URLs: []string{
			"https://playentry.org/project/abc123",
			"https://playentry.org/project/def456",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, repo.SaveGroup(ctx, "code1234", record))

	got, err := repo.GetGroup(ctx, "code1234")
	require.NoError(t, err)
	assert.Equal(t, record.URLs, got.URLs)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestGetGroup_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetGroup(context.Background(), "missing1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveGroup_DuplicateCode(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	record := &domain.GroupRecord{
		URLs:      []string{"https://playentry.org/project/abc123"},
		CreatedAt: time.Now(),
	}

	require.NoError(t, repo.SaveGroup(ctx, "code1234", record))
	assert.Error(t, repo.SaveGroup(ctx, "code1234", record))
}

func TestSaveAndGetSession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tokens := domain.TokenSet{CSRFToken: "csrf-value", XToken: "x-value"}
	require.NoError(t, repo.SaveSession(ctx, "session:key-1", tokens, time.Hour))

	got, found, err := repo.GetSession(ctx, "session:key-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, tokens, *got)
}

func TestGetSession_Missing(t *testing.T) {
	repo := newTestRepository(t)

	got, found, err := repo.GetSession(context.Background(), "session:absent")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestGetSession_Expired(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tokens := domain.TokenSet{CSRFToken: "csrf-value"}
	require.NoError(t, repo.SaveSession(ctx, "session:stale", tokens, -time.Minute))

	_, found, err := repo.GetSession(ctx, "session:stale")
	require.NoError(t, err)
	assert.False(t, found)

	// the expired row is purged on read
	_, found, err = repo.GetSession(ctx, "session:stale")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveSession_Overwrite(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, "session:key-1", domain.TokenSet{CSRFToken: "old"}, time.Hour))
	require.NoError(t, repo.SaveSession(ctx, "session:key-1", domain.TokenSet{CSRFToken: "new"}, time.Hour))

	got, found, err := repo.GetSession(ctx, "session:key-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", got.CSRFToken)
}

func TestDeleteSession(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, "session:key-1", domain.TokenSet{CSRFToken: "c"}, time.Hour))
	require.NoError(t, repo.DeleteSession(ctx, "session:key-1"))

	_, found, err := repo.GetSession(ctx, "session:key-1")
	require.NoError(t, err)
	assert.False(t, found)

	// deleting an absent key is not an error
	assert.NoError(t, repo.DeleteSession(ctx, "session:key-1"))
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.db")

	repo, err := New(path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// reopening the same file re-runs the migration check without error
	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.SaveGroup(context.Background(), "code1234", &domain.GroupRecord{
		URLs:      []string{"https://playentry.org/project/abc123"},
		CreatedAt: time.Now(),
	}))
}
