package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/entrygroup/gallery/internal/domain"
	"github.com/entrygroup/gallery/internal/service"
	"github.com/entrygroup/gallery/internal/service/mocks"
)

func newTestServer(groups service.GroupService) *Server {
	return NewServer(groups, nil, nil, "8080")
}

func serve(t *testing.T, server *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups", server.Handler().CreateGroupAPI)
	mux.HandleFunc("/api/groups/", server.Handler().GetGroupAPI)
	mux.HandleFunc("/create", server.Handler().CreateGroup)
	mux.HandleFunc("/", server.Handler().Root)
	mux.ServeHTTP(rec, req)

	return rec
}

func sampleCreated() *domain.CreateGroupResponse {
	return &domain.CreateGroupResponse{
		Code:      "a1b2c3d4",
		GroupURL:  "http://localhost:8080/a1b2c3d4",
		URLCount:  2,
		CreatedAt: time.Now(),
	}
}

func sampleRecord() *domain.GroupRecord {
	return &domain.GroupRecord{
		URLs:      []string{"https://playentry.org/project/abc123", "https://playentry.org/project/bad999"},
		CreatedAt: time.Now(),
	}
}

func sampleResults() []domain.ResolutionResult {
	return []domain.ResolutionResult{
		{
			Ref: domain.ProjectReference{ID: "abc123", URL: "https://playentry.org/project/abc123"},
			Metadata: &domain.ProjectMetadata{
				ID:             "abc123",
				Name:           "My Project",
				AuthorNickname: "maker",
				ViewCount:      100,
				LikeCount:      5,
				CommentCount:   2,
			},
		},
		{
			Ref: domain.ProjectReference{ID: "bad999", URL: "https://playentry.org/project/bad999"},
			Err: "project page request failed",
		},
	}
}

func TestIndex(t *testing.T) {
	server := newTestServer(new(mocks.GroupService))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `<form method="POST" action="/create">`)
	assert.Contains(t, rec.Body.String(), `name="urls"`)
}

func TestCreateGroupForm(t *testing.T) {
	created := sampleCreated()

	mockService := new(mocks.GroupService)
	mockService.On("CreateGroup", mock.Anything, "https://playentry.org/project/abc123").Return(created, nil)

	server := newTestServer(mockService)

	form := url.Values{"urls": {"https://playentry.org/project/abc123"}}
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Code)
	assert.Contains(t, rec.Body.String(), created.GroupURL)
}

func TestCreateGroupForm_NoValidURLs(t *testing.T) {
	mockService := new(mocks.GroupService)
	mockService.On("CreateGroup", mock.Anything, mock.Anything).Return(nil, service.ErrNoValidURLs)

	server := newTestServer(mockService)

	form := url.Values{"urls": {"not a url"}}
	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No valid project URLs submitted")
}

func TestCreateGroupForm_MethodNotAllowed(t *testing.T) {
	server := newTestServer(new(mocks.GroupService))

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestViewGroup(t *testing.T) {
	record := sampleRecord()

	mockService := new(mocks.GroupService)
	mockService.On("GetGroup", mock.Anything, "a1b2c3d4").Return(record, nil)
	mockService.On("ResolveGroup", mock.Anything, record).Return(sampleResults())

	server := newTestServer(mockService)

	req := httptest.NewRequest(http.MethodGet, "/a1b2c3d4", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "My Project")
	assert.Contains(t, body, "maker")
	assert.Contains(t, body, "views: 100")
	assert.Contains(t, body, "Failed to load project bad999")
}

func TestViewGroup_NotFound(t *testing.T) {
	mockService := new(mocks.GroupService)
	mockService.On("GetGroup", mock.Anything, "deadbeef").Return(nil, service.ErrGroupNotFound)

	server := newTestServer(mockService)

	req := httptest.NewRequest(http.MethodGet, "/deadbeef", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoot_RejectsMalformedCodes(t *testing.T) {
	mockService := new(mocks.GroupService)
	server := newTestServer(mockService)

	for _, path := range []string{"/short", "/UPPERCASE", "/way-too-long-for-a-code"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := serve(t, server, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	mockService.AssertNotCalled(t, "GetGroup", mock.Anything, mock.Anything)
}

func TestCreateGroupAPI(t *testing.T) {
	created := sampleCreated()

	mockService := new(mocks.GroupService)
	mockService.On("CreateGroup", mock.Anything,
		"https://playentry.org/project/abc123\nhttps://playentry.org/project/def456").Return(created, nil)

	server := newTestServer(mockService)

	payload, err := json.Marshal(domain.CreateGroupRequest{URLs: []string{
		"https://playentry.org/project/abc123",
		"https://playentry.org/project/def456",
	}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/groups", bytes.NewReader(payload))
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got domain.CreateGroupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.Code, got.Code)
	assert.Equal(t, created.URLCount, got.URLCount)
}

func TestCreateGroupAPI_InvalidJSON(t *testing.T) {
	server := newTestServer(new(mocks.GroupService))

	req := httptest.NewRequest(http.MethodPost, "/api/groups", strings.NewReader("{not json"))
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGroupAPI(t *testing.T) {
	record := sampleRecord()

	mockService := new(mocks.GroupService)
	mockService.On("GetGroup", mock.Anything, "a1b2c3d4").Return(record, nil)
	mockService.On("ResolveGroup", mock.Anything, record).Return(sampleResults())

	server := newTestServer(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/groups/a1b2c3d4", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view domain.GroupView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "a1b2c3d4", view.Code)
	require.Len(t, view.Results, 2)
	assert.True(t, view.Results[0].OK())
	assert.Equal(t, "My Project", view.Results[0].Metadata.Name)
	assert.False(t, view.Results[1].OK())
	assert.NotEmpty(t, view.Results[1].Err)
}

func TestGetGroupAPI_NotFound(t *testing.T) {
	mockService := new(mocks.GroupService)
	mockService.On("GetGroup", mock.Anything, "deadbeef").Return(nil, service.ErrGroupNotFound)

	server := newTestServer(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/groups/deadbeef", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetGroupAPI_MissingCode(t *testing.T) {
	server := newTestServer(new(mocks.GroupService))

	req := httptest.NewRequest(http.MethodGet, "/api/groups/", nil)
	rec := serve(t, server, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
