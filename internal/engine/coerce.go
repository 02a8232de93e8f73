package engine

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Submissions arrive as untyped JSON (float64, string, []any, map[string]any)
// and a user-facing quiz must never crash on odd input, so everything is
// coerced defensively; an un-coercible value grades as incorrect.

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asCategoryMap(v any) (map[string][]string, bool) {
	switch m := v.(type) {
	case map[string][]string:
		return m, true
	case map[string]any:
		out := make(map[string][]string, len(m))
		for key, raw := range m {
			items, ok := asStringSlice(raw)
			if !ok {
				return nil, false
			}
			out[key] = items
		}
		return out, true
	}
	return nil, false
}

func asResponseMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for key, raw := range m {
			s, ok := raw.(string)
			if !ok {
				return nil, false
			}
			out[key] = s
		}
		return out, true
	}
	return nil, false
}

// asText renders a free-text submission. Non-string values are JSON-encoded
// so keyword grading still sees something searchable.
func asText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases and strips diacritics so keyword matching is
// accent-insensitive ("denúncia" matches "denuncia").
func normalizeText(s string) string {
	lowered := strings.ToLower(s)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
