package extract

import (
	"fmt"
	"html"
)

// snippetLimit bounds the amount of source markup carried inside a
// TokenExtractionError.
const snippetLimit = 200

// TokenExtractionError reports that the mandatory CSRF token could not be
// recovered by any heuristic. Snippet holds a truncated, HTML-escaped
// fragment of the source markup for diagnosis.
type TokenExtractionError struct {
	Snippet string
}

func (e *TokenExtractionError) Error() string {
	return fmt.Sprintf("csrf-token not found in page markup (snippet: %s)", e.Snippet)
}

// snippet produces the diagnostic fragment stored on a
// TokenExtractionError.
func snippet(markup string) string {
	truncated := markup
	if len(truncated) > snippetLimit {
		truncated = truncated[:snippetLimit] + "..."
	}
	return html.EscapeString(truncated)
}
