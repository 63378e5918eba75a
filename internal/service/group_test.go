package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/config"
	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/extract"
	"github.com/entrygroup/gallery/internal/groupcode"
	"github.com/entrygroup/gallery/internal/metrics"
	"github.com/entrygroup/gallery/internal/repository"
	"github.com/entrygroup/gallery/internal/repository/mocks"
)

const testServerURL = "http://localhost:8080"

func newTestService(repo repository.GroupRepository, fetcher PageFetcher, querier ProjectQuerier, m *metrics.Metrics, cfg config.ResolveConfig) GroupService {
	return NewGroupService(repo, groupcode.New(), fetcher, querier, extract.New(), m, zap.NewNop(), testServerURL, cfg)
}

func TestCreateGroup(t *testing.T) {
	mockRepo := new(mocks.GroupRepository)
	mockRepo.On("SaveGroup", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*domain.GroupRecord")).Return(nil)

	m := metrics.New()
	svc := newTestService(mockRepo, nil, nil, m, config.ResolveConfig{})

	input := "https://playentry.org/project/abc123\n" +
		"\n" +
		"not a project url\n" +
		"  https://playentry.org/project/def456  \n" +
		"http://playentry.org/project/nope"

	resp, err := svc.CreateGroup(context.Background(), input)
	require.NoError(t, err)

	assert.Regexp(t, groupcode.Pattern, resp.Code)
	assert.Equal(t, testServerURL+"/"+resp.Code, resp.GroupURL)
	assert.Equal(t, 2, resp.URLCount)
	assert.WithinDuration(t, time.Now(), resp.CreatedAt, 5*time.Second)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GroupsCreated))

	mockRepo.AssertCalled(t, "SaveGroup", mock.Anything, resp.Code, mock.MatchedBy(func(record *domain.GroupRecord) bool {
		return len(record.URLs) == 2 &&
			record.URLs[0] == "https://playentry.org/project/abc123" &&
			record.URLs[1] == "https://playentry.org/project/def456"
	}))
}

func TestCreateGroup_NoValidURLs(t *testing.T) {
	mockRepo := new(mocks.GroupRepository)
	svc := newTestService(mockRepo, nil, nil, nil, config.ResolveConfig{})

	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "  \n\t\n"},
		{"unrelated urls", "https://example.com/project/abc123\nhttps://playentry.org/community"},
		{"wrong scheme", "http://playentry.org/project/abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroup(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrNoValidURLs)
		})
	}

	mockRepo.AssertNotCalled(t, "SaveGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateGroup_SaveError(t *testing.T) {
	mockRepo := new(mocks.GroupRepository)
	mockRepo.On("SaveGroup", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := newTestService(mockRepo, nil, nil, nil, config.ResolveConfig{})

	_, err := svc.CreateGroup(context.Background(), "https://playentry.org/project/abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGetGroup(t *testing.T) {
	record := &domain.GroupRecord{
		URLs:      []string{"https://playentry.org/project/abc123"},
		CreatedAt: time.Now(),
	}

	mockRepo := new(mocks.GroupRepository)
	mockRepo.On("GetGroup", mock.Anything, "code1234").Return(record, nil)

	svc := newTestService(mockRepo, nil, nil, nil, config.ResolveConfig{})

	got, err := svc.GetGroup(context.Background(), "code1234")
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestGetGroup_NotFound(t *testing.T) {
	mockRepo := new(mocks.GroupRepository)
	mockRepo.On("GetGroup", mock.Anything, "missing1").Return(nil, repository.ErrNotFound)

	svc := newTestService(mockRepo, nil, nil, nil, config.ResolveConfig{})

	_, err := svc.GetGroup(context.Background(), "missing1")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGetGroup_RepositoryError(t *testing.T) {
	mockRepo := new(mocks.GroupRepository)
	mockRepo.On("GetGroup", mock.Anything, "code1234").Return(nil, errors.New("db locked"))

	svc := newTestService(mockRepo, nil, nil, nil, config.ResolveConfig{})

	_, err := svc.GetGroup(context.Background(), "code1234")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGroupNotFound)
}
