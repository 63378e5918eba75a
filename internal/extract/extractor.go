// Package extract recovers authentication tokens and project metadata from
// raw project-page markup. Every field is resolved through an ordered chain
// of heuristics; the first non-empty match wins and is never overwritten by
// a lower-priority source.
package extract

import (
	"go.uber.org/zap"

	"github.com/entrygroup/gallery/internal/domain"
)

// Extractor applies the heuristic chains to page markup. It is stateless
// apart from its diagnostic logger and safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
}

// New creates an Extractor with a no-op diagnostic logger
func New() *Extractor {
	return &Extractor{logger: zap.NewNop()}
}

// NewWithLogger creates an Extractor that reports which heuristic matched
// which field through the given logger
func NewWithLogger(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// source is the per-call view of the markup shared by all heuristics: the
// raw text plus the embedded state blob, parsed at most once.
type source struct {
	markup string
	blob   *stateBlob // nil when absent or unparseable
}

// heuristic is one (name, extractor) pair in a priority chain.
type heuristic struct {
	name string
	fn   func(src *source) string
}

func newSource(markup string) *source {
	return &source{
		markup: markup,
		blob:   parseStateBlob(markup),
	}
}

// ExtractTokens recovers the TokenSet from project-page markup. The CSRF
// token is mandatory: when no heuristic yields it, a *TokenExtractionError
// carrying a truncated markup snippet is returned. The x-token is optional
// and defaults to the empty string.
func (e *Extractor) ExtractTokens(markup string) (domain.TokenSet, error) {
	src := newSource(markup)

	csrf := e.firstMatch("csrf-token", src, csrfChain)
	if csrf == "" {
		return domain.TokenSet{}, &TokenExtractionError{Snippet: snippet(markup)}
	}

	return domain.TokenSet{
		CSRFToken: csrf,
		XToken:    e.firstMatch("x-token", src, xTokenChain),
	}, nil
}

// ExtractMetadata recovers whatever project metadata the markup exposes.
// All fields are optional: missing strings stay empty (except the author
// nickname, which gets its placeholder), missing counts stay zero.
func (e *Extractor) ExtractMetadata(markup string) domain.ProjectMetadata {
	src := newSource(markup)

	meta := domain.ProjectMetadata{
		ID:              e.firstMatch("id", src, idChain),
		Name:            e.firstMatch("name", src, nameChain),
		ThumbnailURL:    e.firstMatch("thumbnail", src, thumbnailChain),
		AuthorID:        e.firstMatch("author id", src, authorIDChain),
		AuthorNickname:  e.firstMatch("author nickname", src, authorNicknameChain),
		AuthorAvatarURL: e.firstMatch("author avatar", src, authorAvatarChain),
		ViewCount:       e.firstCount("view count", src, viewCountChain),
		LikeCount:       e.firstCount("like count", src, likeCountChain),
		CommentCount:    e.firstCount("comment count", src, commentCountChain),
		SaveCount:       e.firstCount("save count", src, saveCountChain),
	}

	if meta.AuthorNickname == "" {
		meta.AuthorNickname = domain.DefaultAuthorNickname
	}

	return meta
}

// firstMatch evaluates a heuristic chain top to bottom and returns the
// first non-empty value.
func (e *Extractor) firstMatch(field string, src *source, chain []heuristic) string {
	for _, h := range chain {
		if v := h.fn(src); v != "" {
			e.logger.Debug("heuristic matched",
				zap.String("field", field),
				zap.String("heuristic", h.name),
			)
			return v
		}
	}
	e.logger.Debug("no heuristic matched", zap.String("field", field))
	return ""
}

// firstCount is firstMatch for numeric stat fields: the winning raw value
// is parsed as an integer after stripping thousands separators.
func (e *Extractor) firstCount(field string, src *source, chain []heuristic) int {
	for _, h := range chain {
		raw := h.fn(src)
		if raw == "" {
			continue
		}
		n, ok := parseCount(raw)
		if !ok {
			continue
		}
		e.logger.Debug("heuristic matched",
			zap.String("field", field),
			zap.String("heuristic", h.name),
			zap.Int("value", n),
		)
		return n
	}
	e.logger.Debug("no heuristic matched", zap.String("field", field))
	return 0
}
