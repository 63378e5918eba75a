package service

import (
	"context"
	"errors"

	"github.com/entrygroup/gallery/internal/domain"
)

// ErrNoValidURLs is returned when group creation receives no line matching
// the project-URL shape.
var ErrNoValidURLs = errors.New("no valid project URLs submitted")

// ErrGroupNotFound is returned when a requested group code is unknown.
var ErrGroupNotFound = errors.New("group not found")

// GroupService defines the interface for group creation and resolution
type GroupService interface {
	// CreateGroup parses free-text input (one candidate URL per line),
	// persists the surviving URLs under a fresh group code, and returns
	// the code with its access URL. Returns ErrNoValidURLs, persisting
	// nothing, when no line matches the project-URL shape.
	CreateGroup(ctx context.Context, urlsText string) (*domain.CreateGroupResponse, error)

	// GetGroup retrieves a stored group record by its code. Returns
	// ErrGroupNotFound for unknown codes.
	GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error)

	// ResolveGroup resolves every item of a group into live metadata or a
	// recorded failure, preserving the stored URL order. URLs that do not
	// match the project-URL shape are skipped silently.
	ResolveGroup(ctx context.Context, record *domain.GroupRecord) []domain.ResolutionResult
}

// PageFetcher retrieves a project's public page markup
type PageFetcher interface {
	FetchProjectPage(ctx context.Context, projectID string) (string, error)
}

// ProjectQuerier fetches live project metadata from the external query API
type ProjectQuerier interface {
	QueryProject(ctx context.Context, projectID string, tokens domain.TokenSet) (*domain.ProjectMetadata, error)
}
