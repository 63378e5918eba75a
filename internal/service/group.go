// Package service implements group creation and the group resolution
// pipeline: fetch the project page, extract tokens and metadata, query the
// external API, and assemble per-item results that fail independently.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/config"
	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/extract"
	"github.com/entrygroup/gallery/internal/groupcode"
	"github.com/entrygroup/gallery/internal/metrics"
	"github.com/entrygroup/gallery/internal/repository"
)

// projectURLRe validates a submitted line as a project URL;
// projectIDRe extracts the project identifier from a stored URL.
var (
	projectURLRe = regexp.MustCompile(`^https://playentry\.org/project/[A-Za-z0-9]+`)
	projectIDRe  = regexp.MustCompile(`playentry\.org/project/([A-Za-z0-9]+)`)
)

// groupService implements GroupService
type groupService struct {
	repo      repository.GroupRepository
	codes     groupcode.Generator
	fetcher   PageFetcher
	querier   ProjectQuerier
	extractor *extract.Extractor
	sessions  *sessionCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
	serverURL string
	cfg       config.ResolveConfig
}

// NewGroupService creates a new group service. Metrics may be nil; the
// session cache is disabled when cfg.TokenCacheTTL is zero.
func NewGroupService(
	repo repository.GroupRepository,
	codes groupcode.Generator,
	fetcher PageFetcher,
	querier ProjectQuerier,
	extractor *extract.Extractor,
	m *metrics.Metrics,
	logger *zap.Logger,
	serverURL string,
	cfg config.ResolveConfig,
) GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &groupService{
		repo:      repo,
		codes:     codes,
		fetcher:   fetcher,
		querier:   querier,
		extractor: extractor,
		metrics:   m,
		logger:    logger,
		serverURL: serverURL,
		cfg:       cfg,
	}

	if cfg.TokenCacheTTL > 0 {
		s.sessions = newSessionCache(repo, cfg.TokenCacheTTL, logger)
	}

	return s
}

// CreateGroup parses submitted text into project URLs and persists them
// under a fresh group code
func (s *groupService) CreateGroup(ctx context.Context, urlsText string) (*domain.CreateGroupResponse, error) {
	var urls []string
	for _, line := range strings.Split(urlsText, "\n") {
		line = strings.TrimSpace(line)
		if projectURLRe.MatchString(line) {
			urls = append(urls, line)
		}
	}

	if len(urls) == 0 {
		return nil, ErrNoValidURLs
	}

	code := s.codes.Generate()
	record := &domain.GroupRecord{
		URLs:      urls,
		CreatedAt: time.Now(),
	}

	if err := s.repo.SaveGroup(ctx, code, record); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	if s.metrics != nil {
		s.metrics.GroupsCreated.Inc()
	}

	s.logger.Info("group created",
		zap.String("code", code),
		zap.Int("url_count", len(urls)),
	)

	return &domain.CreateGroupResponse{
		Code:      code,
		GroupURL:  s.serverURL + "/" + code,
		URLCount:  len(urls),
		CreatedAt: record.CreatedAt,
	}, nil
}

// GetGroup retrieves a stored group record by its code
func (s *groupService) GetGroup(ctx context.Context, code string) (*domain.GroupRecord, error) {
	record, err := s.repo.GetGroup(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return record, nil
}

// Ensure groupService implements GroupService interface
var _ GroupService = (*groupService)(nil)
