package entry

import (
	"fmt"
	"strings"
)

// previewLimit bounds the response-body preview carried in parse errors.
const previewLimit = 100

// FetchError reports a non-success HTTP status from the project page.
type FetchError struct {
	ProjectID  string
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("project page request failed for %s (%s): status %d", e.ProjectID, e.URL, e.StatusCode)
}

// UnexpectedHTMLError reports that the query endpoint answered with markup
// instead of structured data, which usually means an auth or session
// problem upstream.
type UnexpectedHTMLError struct {
	ProjectID  string
	StatusCode int
}

func (e *UnexpectedHTMLError) Error() string {
	return fmt.Sprintf("query endpoint returned HTML for project %s (status %d); likely an auth or session problem", e.ProjectID, e.StatusCode)
}

// ResponseParseError reports a query response body that is not valid JSON.
type ResponseParseError struct {
	ProjectID string
	Preview   string
	Err       error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse query response for project %s: %v (body preview: %s)", e.ProjectID, e.Err, e.Preview)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// QueryRejectedError reports an application-level errors array in an
// otherwise well-formed query response.
type QueryRejectedError struct {
	ProjectID string
	Messages  []string
}

func (e *QueryRejectedError) Error() string {
	return fmt.Sprintf("query rejected for project %s: %s", e.ProjectID, strings.Join(e.Messages, "; "))
}

// preview truncates a response body for inclusion in error messages.
func preview(body string) string {
	if len(body) > previewLimit {
		return body[:previewLimit] + "..."
	}
	return body
}
