// Package jsonrepair recovers JSON objects from malformed LLM output.
//
// Model responses are not guaranteed to be well-formed JSON even when the
// prompt demands it: they arrive wrapped in markdown fences, prefixed with
// commentary, or carrying trailing commas. The repair cascade is an ordered
// list of total strategies applied left-to-right; the first one that yields
// a valid object wins.
package jsonrepair

import (
	"encoding/json"
	"regexp"
	"strings"
)

const snippetLen = 300

var (
	openFenceRe     = regexp.MustCompile("(?m)^```(?:json)?[ \t]*\n?")
	closeFenceRe    = regexp.MustCompile("(?m)\n?```[ \t]*$")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// strategy is one repair attempt. Apply never panics and never returns an
// error; a false second return means "try the next strategy".
type strategy struct {
	name  string
	apply func(text string) (map[string]any, bool)
}

// cascade is the fixed recovery order. Markdown fences are stripped before
// any strategy runs, so the direct parse already covers fenced output.
var cascade = []strategy{
	{"direct", parseDirect},
	{"brace-bounded", parseBraceBounded},
	{"trailing-commas", func(text string) (map[string]any, bool) {
		return parseDirect(RemoveTrailingCommas(text))
	}},
	{"trailing-commas+brace-bounded", func(text string) (map[string]any, bool) {
		return parseBraceBounded(RemoveTrailingCommas(text))
	}},
}

// Object extracts a JSON object from raw LLM text.
// Returns *UnparsableError when every strategy fails.
func Object(raw string) (map[string]any, error) {
	text := StripFences(raw)

	for _, s := range cascade {
		if obj, ok := s.apply(text); ok {
			return obj, nil
		}
	}

	snippet := text
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	return nil, &UnparsableError{Snippet: snippet}
}

// Array extracts a JSON array from raw LLM text, used by callers that
// request list-shaped output (e.g. batch job scoring). The same fence
// stripping applies; the bounded search looks for brackets instead of braces.
func Array(raw string, out any) error {
	text := StripFences(raw)

	if json.Unmarshal([]byte(text), out) == nil {
		return nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		if json.Unmarshal([]byte(text[start:end+1]), out) == nil {
			return nil
		}
	}

	cleaned := RemoveTrailingCommas(text)
	if json.Unmarshal([]byte(cleaned), out) == nil {
		return nil
	}

	snippet := text
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	return &UnparsableError{Snippet: snippet}
}

// StripFences removes leading/trailing markdown code-fence markers, both
// ```json-tagged and untagged.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	text = openFenceRe.ReplaceAllString(text, "")
	text = closeFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// RemoveTrailingCommas deletes commas immediately preceding a closing brace
// or bracket, a common LLM output quirk.
func RemoveTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

func parseDirect(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// parseBraceBounded parses the largest substring bounded by the first "{"
// and the last "}".
func parseBraceBounded(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return parseDirect(text[start : end+1])
}
