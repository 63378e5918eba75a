package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/entrygroup/gallery/internal/domain"
)

// DefaultQueryEndpoint is the external query API the gallery resolves
// project metadata against.
const DefaultQueryEndpoint = "https://playentry.org/graphql/SELECT_PROJECT_LITE"

// projectQuery is the parametrized query document sent for every project.
const projectQuery = `
query SELECT_PROJECT_LITE($id: ID! $groupId: ID) {
  project(id: $id, groupId: $groupId) {
    id
    name
    user {
      id
      nickname
      profileImage {
        filename
      }
    }
    thumb
    visit
    likeCnt
    comment
  }
}
`

// QueryClient submits structured project queries to the external API
type QueryClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewQueryClient creates a query client for the given endpoint. An empty
// endpoint selects the production API.
func NewQueryClient(endpoint string) *QueryClient {
	if endpoint == "" {
		endpoint = DefaultQueryEndpoint
	}
	return &QueryClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type queryRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type queryResponse struct {
	Data struct {
		Project *projectPayload `json:"project"`
	} `json:"data"`
	Errors []queryError `json:"errors"`
}

type queryError struct {
	Message string `json:"message"`
}

type projectPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User struct {
		ID           string `json:"id"`
		Nickname     string `json:"nickname"`
		ProfileImage struct {
			Filename string `json:"filename"`
		} `json:"profileImage"`
	} `json:"user"`
	Thumb    string `json:"thumb"`
	Visit    int    `json:"visit"`
	LikeCnt  int    `json:"likeCnt"`
	Comment  int    `json:"comment"`
	Favorite int    `json:"favorite"`
}

// QueryProject fetches live metadata for a project through the query API,
// authenticating with the extracted tokens. The response body is read as
// text before any parse so that HTML error pages can be told apart from
// malformed JSON.
func (c *QueryClient) QueryProject(ctx context.Context, projectID string, tokens domain.TokenSet) (*domain.ProjectMetadata, error) {
	payload, err := json.Marshal(queryRequest{
		Query:     projectQuery,
		Variables: map[string]any{"id": projectID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	// The API expects these two header names in exactly this lowercase
	// spelling, so they bypass Go's header canonicalization.
	req.Header["csrf-token"] = []string{tokens.CSRFToken}
	req.Header["x-token"] = []string{tokens.XToken}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit query: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read query response: %w", err)
	}
	body := string(raw)

	if strings.HasPrefix(strings.TrimLeft(body, " \t\r\n"), "<") {
		return nil, &UnexpectedHTMLError{ProjectID: projectID, StatusCode: resp.StatusCode}
	}

	var parsed queryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ResponseParseError{ProjectID: projectID, Preview: preview(body), Err: err}
	}

	if len(parsed.Errors) > 0 {
		messages := make([]string, len(parsed.Errors))
		for i, qe := range parsed.Errors {
			messages[i] = qe.Message
		}
		return nil, &QueryRejectedError{ProjectID: projectID, Messages: messages}
	}

	if parsed.Data.Project == nil {
		return nil, &ResponseParseError{ProjectID: projectID, Preview: preview(body), Err: fmt.Errorf("response carries no project object")}
	}

	return toMetadata(parsed.Data.Project), nil
}

// toMetadata maps the wire payload into the domain record, applying the
// same defaults as the page extractor.
func toMetadata(p *projectPayload) *domain.ProjectMetadata {
	meta := &domain.ProjectMetadata{
		ID:              p.ID,
		Name:            p.Name,
		ThumbnailURL:    p.Thumb,
		AuthorID:        p.User.ID,
		AuthorNickname:  p.User.Nickname,
		AuthorAvatarURL: p.User.ProfileImage.Filename,
		ViewCount:       p.Visit,
		LikeCount:       p.LikeCnt,
		CommentCount:    p.Comment,
		SaveCount:       p.Favorite,
	}
	if meta.AuthorNickname == "" {
		meta.AuthorNickname = domain.DefaultAuthorNickname
	}
	return meta
}
