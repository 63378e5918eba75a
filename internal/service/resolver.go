package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/entry"
	"github.com/entrygroup/gallery/internal/extract"
	"github.com/entrygroup/gallery/internal/metrics"
)

// ResolveGroup resolves all items of a group concurrently. Results land in
// an indexed slice, so the output order always matches the stored URL
// order no matter which remote calls finish first. Every per-item error is
// downgraded to a failed ResolutionResult; one bad item never affects its
// siblings.
func (s *groupService) ResolveGroup(ctx context.Context, record *domain.GroupRecord) []domain.ResolutionResult {
	var refs []domain.ProjectReference
	for _, url := range record.URLs {
		m := projectIDRe.FindStringSubmatch(url)
		if m == nil {
			// not a project URL; skip without emitting a placeholder
			continue
		}
		refs = append(refs, domain.ProjectReference{ID: m[1], URL: url})
	}

	results := make([]domain.ResolutionResult, len(refs))

	var sem chan struct{}
	if s.cfg.MaxConcurrent > 0 {
		sem = make(chan struct{}, s.cfg.MaxConcurrent)
	}

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref domain.ProjectReference) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = s.resolveItem(ctx, ref)
		}(i, ref)
	}
	wg.Wait()

	return results
}

// resolveItem runs the fetch → extract → query pipeline for one project
// and converts any error into a failed result.
func (s *groupService) resolveItem(ctx context.Context, ref domain.ProjectReference) domain.ResolutionResult {
	meta, err := s.resolveMetadata(ctx, ref.ID)
	if err != nil {
		kind := errorKind(err)
		s.logger.Warn("project resolution failed",
			zap.String("project_id", ref.ID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.ItemsResolved.WithLabelValues(kind).Inc()
		}
		return domain.ResolutionResult{Ref: ref, Err: err.Error()}
	}

	if s.metrics != nil {
		s.metrics.ItemsResolved.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	return domain.ResolutionResult{Ref: ref, Metadata: meta}
}

func (s *groupService) resolveMetadata(ctx context.Context, projectID string) (*domain.ProjectMetadata, error) {
	// Cached session tokens let the query run without re-fetching the
	// page. A failure invalidates the session but is not retried; the
	// next render starts from the page again.
	if s.sessions != nil && s.cfg.UseQueryAPI {
		if tokens, ok := s.sessions.lookup(ctx, projectID); ok {
			meta, err := s.querier.QueryProject(ctx, projectID, tokens)
			if err != nil {
				s.sessions.invalidate(ctx, projectID)
				return nil, err
			}
			return meta, nil
		}
	}

	markup, err := s.fetcher.FetchProjectPage(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.extractor.ExtractTokens(markup)
	if err != nil {
		return nil, err
	}

	pageMeta := s.extractor.ExtractMetadata(markup)

	if s.sessions != nil {
		s.sessions.store(ctx, projectID, tokens)
	}

	if !s.cfg.UseQueryAPI {
		if pageMeta.ID == "" {
			pageMeta.ID = projectID
		}
		return &pageMeta, nil
	}

	meta, err := s.querier.QueryProject(ctx, projectID, tokens)
	if err != nil {
		return nil, err
	}

	fillMissing(meta, &pageMeta)
	return meta, nil
}

// fillMissing backfills fields the query response left empty with values
// the page extractor recovered. Query values always win when present.
func fillMissing(meta, page *domain.ProjectMetadata) {
	if meta.ID == "" {
		meta.ID = page.ID
	}
	if meta.Name == "" {
		meta.Name = page.Name
	}
	if meta.ThumbnailURL == "" {
		meta.ThumbnailURL = page.ThumbnailURL
	}
	if meta.AuthorID == "" {
		meta.AuthorID = page.AuthorID
	}
	if meta.AuthorNickname == domain.DefaultAuthorNickname && page.AuthorNickname != "" {
		meta.AuthorNickname = page.AuthorNickname
	}
	if meta.AuthorAvatarURL == "" {
		meta.AuthorAvatarURL = page.AuthorAvatarURL
	}
	if meta.ViewCount == 0 {
		meta.ViewCount = page.ViewCount
	}
	if meta.LikeCount == 0 {
		meta.LikeCount = page.LikeCount
	}
	if meta.CommentCount == 0 {
		meta.CommentCount = page.CommentCount
	}
	if meta.SaveCount == 0 {
		meta.SaveCount = page.SaveCount
	}
}

// errorKind maps a resolution error onto its taxonomy bucket, used for
// logging and metrics labels.
func errorKind(err error) string {
	var fetchErr *entry.FetchError
	var tokenErr *extract.TokenExtractionError
	var htmlErr *entry.UnexpectedHTMLError
	var parseErr *entry.ResponseParseError
	var rejectedErr *entry.QueryRejectedError

	switch {
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &tokenErr):
		return "token_extraction"
	case errors.As(err, &htmlErr):
		return "unexpected_html"
	case errors.As(err, &parseErr):
		return "response_parse"
	case errors.As(err, &rejectedErr):
		return "query_rejected"
	default:
		return "other"
	}
}
