package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// The chains below encode the fallback order for every extracted field:
// state blob first, then inline JSON fragments, then script-body variable
// assignments, then declarative markup, then the field-specific last
// resorts. Order matters; see the package doc.

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)

	inlineCSRFRe  = regexp.MustCompile(`(?i)"csrf-token"\s*:\s*"([^"]+)"`)
	inlineXTokenRe = regexp.MustCompile(`(?i)"x-token"\s*:\s*"([^"]+)"`)

	// Script-body variable assignments, tried in this order per script.
	scriptCSRFPatterns = []*regexp.Regexp{
		regexp.MustCompile(`csrfToken\s*[=:]\s*["']([^"']+)["']`),
		regexp.MustCompile(`"csrf-token"\s*[=:]\s*["']([^"']+)["']`),
		regexp.MustCompile(`csrf_token\s*[=:]\s*["']([^"']+)["']`),
	}
	scriptXTokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`token\s*[=:]\s*["']([^"']+)["']`),
		regexp.MustCompile(`x-token\s*[=:]\s*["']([^"']+)["']`),
		regexp.MustCompile(`xToken\s*[=:]\s*["']([^"']+)["']`),
		regexp.MustCompile(`authToken\s*[=:]\s*["']([^"']+)["']`),
	}

	metaCSRFRe   = regexp.MustCompile(`(?i)<meta\s+[^>]*name=["']csrf-token["'][^>]*content=["']([^"']+)["']`)
	metaXTokenRe = regexp.MustCompile(`(?i)<meta\s+[^>]*name=["']x-token["'][^>]*content=["']([^"']+)["']`)
	ogTitleRe    = regexp.MustCompile(`(?i)<meta\s+[^>]*property=["']og:title["'][^>]*content=["']([^"']+)["']`)
	ogImageRe    = regexp.MustCompile(`(?i)<meta\s+[^>]*property=["']og:image["'][^>]*content=["']([^"']+)["']`)

	formInputPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<input[^>]*name=["']_csrf["'][^>]*value=["']([^"']+)["'][^>]*>`),
		regexp.MustCompile(`(?i)<input[^>]*name=["']csrf-token["'][^>]*value=["']([^"']+)["'][^>]*>`),
		regexp.MustCompile(`(?i)<input[^>]*name=["']csrf["'][^>]*value=["']([^"']+)["'][^>]*>`),
	}
	dataAttrPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<[^>]*data-token=["']([^"']+)["'][^>]*>`),
		regexp.MustCompile(`(?i)<[^>]*data-x-token=["']([^"']+)["'][^>]*>`),
	}

	// Bearer-token shape: three dot-separated base64url segments starting
	// with the fixed HS256 JWT header.
	jwtRe = regexp.MustCompile(`eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9\.[^"'\s<>]+\.[^"'\s<>]+`)

	statsBlockRe = regexp.MustCompile(`(?is)<[a-z][a-z0-9]*[^>]*class=["'][^"']*stat[^"']*["'][^>]*>(.*?)</[a-z][a-z0-9]*>`)
)

var csrfChain = []heuristic{
	{"state blob", blobString("csrfToken", "csrf-token", "csrf_token")},
	{"inline JSON", rawMatch(inlineCSRFRe)},
	{"script variable", scriptVar(scriptCSRFPatterns)},
	{"meta tag", rawMatch(metaCSRFRe)},
	{"form input", rawFirst(formInputPatterns)},
}

var xTokenChain = []heuristic{
	{"state blob", blobString("xToken", "x-token")},
	{"inline JSON", rawMatch(inlineXTokenRe)},
	{"script variable", scriptVar(scriptXTokenPatterns)},
	{"meta tag", rawMatch(metaXTokenRe)},
	{"data attribute", rawFirst(dataAttrPatterns)},
	{"JWT scan", func(src *source) string { return jwtRe.FindString(src.markup) }},
}

var idChain = []heuristic{
	{"state blob", blobProjectString("id")},
	{"inline JSON", rawMatch(inlineStringRe("id"))},
}

var nameChain = []heuristic{
	{"state blob", blobProjectString("name")},
	{"inline JSON", rawMatch(inlineStringRe("name"))},
	{"og:title meta tag", rawMatch(ogTitleRe)},
}

var thumbnailChain = []heuristic{
	{"state blob", blobProjectString("thumb", "thumbnail")},
	{"inline JSON", rawMatch(inlineStringRe("thumb"))},
	{"og:image meta tag", rawMatch(ogImageRe)},
}

var authorIDChain = []heuristic{
	{"state blob", blobAuthorString("id")},
}

var authorNicknameChain = []heuristic{
	{"state blob", blobAuthorString("nickname")},
	{"inline JSON", rawMatch(inlineStringRe("nickname"))},
}

var authorAvatarChain = []heuristic{
	{"state blob", blobAuthorAvatar()},
}

var viewCountChain = countChain("visit", "viewCount")
var likeCountChain = countChain("likeCnt", "Heart")
var commentCountChain = countChain("comment", "Comment")
var saveCountChain = countChain("favorite", "Save")

// countChain builds the stat-field fallback order: state blob, inline JSON
// number, the stats block, then the whole document.
func countChain(jsonKey, classMarker string) []heuristic {
	inlineRe := inlineNumberRe(jsonKey)
	markerRe := classNumberRe(classMarker)
	return []heuristic{
		{"state blob", blobProjectCount(jsonKey)},
		{"inline JSON", rawMatch(inlineRe)},
		{"stats block", statsBlock(markerRe)},
		{"document scan", rawMatch(markerRe)},
	}
}

func inlineStringRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"([^"]+)"`)
}

func inlineNumberRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"?([0-9][0-9,]*)"?`)
}

// classNumberRe matches the first integer rendered after an element whose
// class list contains the marker, e.g. the count following a
// class="viewCount ..." stat icon. Interleaved tags and label text are
// tolerated between the marker element and its number.
func classNumberRe(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)class=["'][^"']*` + regexp.QuoteMeta(marker) + `[^"']*["'][^>]*>(?:<[^>]*>|[^0-9<]+)*([0-9][0-9,]*)`)
}

func rawMatch(re *regexp.Regexp) func(*source) string {
	return func(src *source) string {
		return firstSubmatch(re, src.markup)
	}
}

func rawFirst(patterns []*regexp.Regexp) func(*source) string {
	return func(src *source) string {
		for _, re := range patterns {
			if v := firstSubmatch(re, src.markup); v != "" {
				return v
			}
		}
		return ""
	}
}

// scriptVar scans each inlined script body for the given assignment
// patterns. Within one script the patterns are tried in priority order.
func scriptVar(patterns []*regexp.Regexp) func(*source) string {
	return func(src *source) string {
		for _, script := range scriptRe.FindAllStringSubmatch(src.markup, -1) {
			body := script[1]
			for _, re := range patterns {
				if v := firstSubmatch(re, body); v != "" {
					return v
				}
			}
		}
		return ""
	}
}

// statsBlock restricts a pattern to the best-effort stats fragment of the
// page, when one exists.
func statsBlock(re *regexp.Regexp) func(*source) string {
	return func(src *source) string {
		block := firstSubmatch(statsBlockRe, src.markup)
		if block == "" {
			return ""
		}
		return firstSubmatch(re, block)
	}
}

func blobString(keys ...string) func(*source) string {
	return func(src *source) string {
		if src.blob == nil {
			return ""
		}
		return src.blob.findString(keys...)
	}
}

func blobProjectString(keys ...string) func(*source) string {
	return func(src *source) string {
		if src.blob == nil {
			return ""
		}
		return getString(src.blob.project(), keys...)
	}
}

func blobProjectCount(key string) func(*source) string {
	return func(src *source) string {
		if src.blob == nil {
			return ""
		}
		n, ok := toCount(src.blob.project()[key])
		if !ok {
			return ""
		}
		return strconv.Itoa(n)
	}
}

func blobAuthorString(keys ...string) func(*source) string {
	return func(src *source) string {
		if src.blob == nil {
			return ""
		}
		return getString(src.blob.author(), keys...)
	}
}

func blobAuthorAvatar() func(*source) string {
	return func(src *source) string {
		if src.blob == nil {
			return ""
		}
		image, _ := src.blob.author()["profileImage"].(map[string]any)
		return getString(image, "filename")
	}
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseCount parses an integer stat value, tolerating thousands separators.
func parseCount(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
