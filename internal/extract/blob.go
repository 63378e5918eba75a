package extract

import (
	"encoding/json"
	"regexp"
	"sort"
)

// The most authoritative source on a project page is the full-state JSON
// blob the site embeds for its client-side renderer, assigned to the
// well-known __NEXT_DATA__ global.

var (
	nextDataScriptRe = regexp.MustCompile(`(?is)<script[^>]*id=["']__NEXT_DATA__["'][^>]*>(.*?)</script>`)
	nextDataAssignRe = regexp.MustCompile(`(?is)window\.__NEXT_DATA__\s*=\s*(\{.*?\})\s*(?:;|</script>)`)
)

// stateBlob is the decoded state blob plus lazily located sub-objects.
type stateBlob struct {
	root map[string]any

	projectOnce bool
	projectMap  map[string]any
}

// parseStateBlob locates and decodes the embedded state blob. Strict JSON
// parsing is attempted first; the lenient repair pass only runs when that
// fails. Returns nil when no parseable blob exists.
func parseStateBlob(markup string) *stateBlob {
	raw := firstSubmatch(nextDataScriptRe, markup)
	if raw == "" {
		raw = firstSubmatch(nextDataAssignRe, markup)
	}
	if raw == "" {
		return nil
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		if err := json.Unmarshal([]byte(RepairJSON(raw)), &root); err != nil {
			return nil
		}
	}

	return &stateBlob{root: root}
}

// findString walks the blob and returns the first string value stored under
// any of the given keys, trying the keys in argument order at every node.
// Traversal is depth-first over sorted keys, so results are deterministic.
func (b *stateBlob) findString(keys ...string) string {
	return findStringIn(b.root, keys)
}

func findStringIn(node any, keys []string) string {
	switch v := node.(type) {
	case map[string]any:
		for _, key := range keys {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		for _, k := range sortedKeys(v) {
			if s := findStringIn(v[k], keys); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range v {
			if s := findStringIn(item, keys); s != "" {
				return s
			}
		}
	}
	return ""
}

// project returns the nested project object, located as the first map
// carrying both an "id" and a "name". Never returns nil.
func (b *stateBlob) project() map[string]any {
	if !b.projectOnce {
		b.projectOnce = true
		b.projectMap = findProjectIn(b.root)
	}
	if b.projectMap == nil {
		return map[string]any{}
	}
	return b.projectMap
}

// author returns the project's nested user object. Never returns nil.
func (b *stateBlob) author() map[string]any {
	if user, ok := b.project()["user"].(map[string]any); ok {
		return user
	}
	return map[string]any{}
}

func findProjectIn(node any) map[string]any {
	switch v := node.(type) {
	case map[string]any:
		if _, hasID := v["id"].(string); hasID {
			if _, hasName := v["name"].(string); hasName {
				return v
			}
		}
		for _, k := range sortedKeys(v) {
			if m := findProjectIn(v[k]); m != nil {
				return m
			}
		}
	case []any:
		for _, item := range v {
			if m := findProjectIn(item); m != nil {
				return m
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// getString returns the first non-empty string stored under any of the
// given keys of m.
func getString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// toCount coerces a decoded JSON value into a non-negative int.
func toCount(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return int(n), true
	case string:
		return parseCount(n)
	case json.Number:
		if i, err := n.Int64(); err == nil && i >= 0 {
			return int(i), true
		}
	}
	return 0, false
}
