package domain

import (
	"time"
)

// DefaultAuthorNickname is used when neither the query API nor the page
// markup yields an author nickname.
const DefaultAuthorNickname = "unknown"

// ProjectReference identifies one externally hosted project: the ID parsed
// out of a stored URL plus the URL it came from.
type ProjectReference struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GroupRecord is the persisted list of project URLs behind a group code.
// It is written once at creation time and never mutated afterwards.
type GroupRecord struct {
	URLs      []string  `json:"urls"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenSet holds the two credential strings the external query API expects.
// XToken may be empty; CSRFToken never is once extraction succeeds.
type TokenSet struct {
	CSRFToken string `json:"csrf_token"`
	XToken    string `json:"x_token"`
}

// ProjectMetadata is the live view of one project, recomputed on every
// group-page render. Numeric fields default to 0 when the source omits them.
type ProjectMetadata struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ThumbnailURL    string `json:"thumbnail_url"`
	AuthorID        string `json:"author_id"`
	AuthorNickname  string `json:"author_nickname"`
	AuthorAvatarURL string `json:"author_avatar_url"`
	ViewCount       int    `json:"view_count"`
	LikeCount       int    `json:"like_count"`
	CommentCount    int    `json:"comment_count"`
	SaveCount       int    `json:"save_count"`
}

// ResolutionResult is the outcome of resolving one group item: either live
// metadata or a recorded failure. Metadata being non-nil discriminates the
// two cases.
type ResolutionResult struct {
	Ref      ProjectReference `json:"ref"`
	Metadata *ProjectMetadata `json:"metadata,omitempty"`
	Err      string           `json:"error,omitempty"`
}

// OK reports whether the item resolved successfully.
func (r ResolutionResult) OK() bool {
	return r.Metadata != nil
}

// CreateGroupRequest represents the JSON API request to create a group
type CreateGroupRequest struct {
	URLs []string `json:"urls"`
}

// CreateGroupResponse represents the response when creating a group
type CreateGroupResponse struct {
	Code      string    `json:"code"`
	GroupURL  string    `json:"group_url"`
	URLCount  int       `json:"url_count"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupView is the resolved form of a group as served by the JSON API
type GroupView struct {
	Code    string             `json:"code"`
	Results []ResolutionResult `json:"results"`
}
