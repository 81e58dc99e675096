package extraction

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/careernova/portfolio-engine/internal/types"
)

// fieldKind is the expected JSON shape of a portfolio field.
type fieldKind int

const (
	kindString fieldKind = iota
	kindList
	kindMap
)

// fieldSpec declares one required portfolio key: its expected shape and how
// to default it when missing or mis-shaped. Adding a required field means
// adding a row here, nothing else.
type fieldSpec struct {
	name       string
	kind       fieldKind
	defaultFor func(username string) any
}

var portfolioFields = []fieldSpec{
	{"name", kindString, func(username string) any {
		if username == "" {
			return "Unknown"
		}
		return titleCase(username)
	}},
	{"role", kindString, emptyString},
	{"tagline", kindString, emptyString},
	{"bio", kindString, emptyString},
	{"skills", kindList, emptyList},
	{"projects", kindList, emptyList},
	{"experience", kindList, emptyList},
	{"education", kindList, emptyList},
	{"achievements", kindList, emptyList},
	{"contact", kindMap, emptyMap},
}

func emptyString(string) any { return "" }
func emptyList(string) any   { return []any{} }
func emptyMap(string) any    { return map[string]any{} }

// Normalize coerces a parsed LLM object into the fixed portfolio shape.
// Every required key is present afterwards: list fields degrade to empty
// lists on type mismatch, map fields to empty maps, and string fields are
// stringified or defaulted. The username seeds the name default when the
// resume genuinely provides none.
func Normalize(data map[string]any, username string) map[string]any {
	result := make(map[string]any, len(portfolioFields))

	for _, field := range portfolioFields {
		val, present := data[field.name]
		if !present || val == nil {
			result[field.name] = field.defaultFor(username)
			continue
		}

		switch field.kind {
		case kindList:
			if list, ok := val.([]any); ok {
				result[field.name] = list
			} else {
				result[field.name] = field.defaultFor(username)
			}
		case kindMap:
			if m, ok := val.(map[string]any); ok {
				result[field.name] = m
			} else {
				result[field.name] = field.defaultFor(username)
			}
		case kindString:
			if s, ok := val.(string); ok {
				result[field.name] = s
			} else {
				result[field.name] = fmt.Sprint(val)
			}
		}
	}

	return result
}

// ToPortfolio converts a normalized object into the typed portfolio record.
// Element-level mismatches inside lists are tolerated: malformed entries are
// dropped rather than failing the whole conversion.
func ToPortfolio(m map[string]any) types.Portfolio {
	p := types.Portfolio{
		Name:         asString(m["name"]),
		Role:         asString(m["role"]),
		Tagline:      asString(m["tagline"]),
		Bio:          asString(m["bio"]),
		Skills:       asStringSlice(m["skills"]),
		Achievements: asStringSlice(m["achievements"]),
		Contact:      asStringMap(m["contact"]),
	}

	p.Projects = []types.Project{}
	for _, item := range asSlice(m["projects"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Projects = append(p.Projects, types.Project{
			Title:        asString(entry["title"]),
			Description:  asString(entry["description"]),
			Technologies: asStringSlice(entry["technologies"]),
		})
	}

	p.Experience = []types.Experience{}
	for _, item := range asSlice(m["experience"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Experience = append(p.Experience, types.Experience{
			Company:     asString(entry["company"]),
			Role:        asString(entry["role"]),
			Duration:    asString(entry["duration"]),
			Description: asString(entry["description"]),
		})
	}

	p.Education = []types.Education{}
	for _, item := range asSlice(m["education"]) {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Education = append(p.Education, types.Education{
			Institution: asString(entry["institution"]),
			Degree:      asString(entry["degree"]),
			Year:        asString(entry["year"]),
		})
	}

	return p
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asSlice(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return nil
}

func asStringSlice(v any) []string {
	out := []string{}
	for _, item := range asSlice(v) {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(v any) map[string]string {
	out := map[string]string{}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, val := range m {
		if s, ok := val.(string); ok && s != "" {
			out[k] = s
		}
	}
	return out
}

// titleCase capitalizes the first letter after every non-letter boundary
// and lowers the rest, matching how usernames become display names
// ("jane doe" becomes "Jane Doe", "jane.doe" becomes "Jane.Doe").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			r = unicode.ToUpper(r)
			prevLetter = true
		case unicode.IsLetter(r):
			r = unicode.ToLower(r)
		default:
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
