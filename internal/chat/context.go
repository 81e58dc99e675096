package chat

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/careernova/portfolio-engine/internal/types"
)

// rawTextLimit bounds the raw-resume fallback context in characters.
const rawTextLimit = 4000

// minSections is the number of non-empty structured sections required
// before the structured context is preferred over raw resume text.
const minSections = 3

// BuildContext assembles the candidate-info block handed to every answer
// path. Structured portfolio fields are joined into labeled sections; when
// fewer than three are non-empty the first 4000 characters of the raw
// resume text serve instead, since sparse structured data usually means
// extraction missed most of the document.
func BuildContext(p types.Portfolio, resumeText string) string {
	var sections []string

	if p.Name != "" {
		sections = append(sections, "Name: "+p.Name)
	}
	if p.Role != "" {
		sections = append(sections, "Role: "+p.Role)
	}
	if p.Bio != "" {
		sections = append(sections, "Bio: "+p.Bio)
	}
	if len(p.Skills) > 0 {
		sections = append(sections, "Skills: "+strings.Join(p.Skills, ", "))
	}

	if len(p.Experience) > 0 {
		var lines []string
		for _, e := range p.Experience {
			lines = append(lines, fmt.Sprintf("  - %s at %s (%s): %s", e.Role, e.Company, e.Duration, e.Description))
		}
		sections = append(sections, "Experience:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Projects) > 0 {
		var lines []string
		for _, proj := range p.Projects {
			lines = append(lines, fmt.Sprintf("  - %s: %s [Technologies: %s]",
				proj.Title, proj.Description, strings.Join(proj.Technologies, ", ")))
		}
		sections = append(sections, "Projects:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Education) > 0 {
		var lines []string
		for _, ed := range p.Education {
			lines = append(lines, fmt.Sprintf("  - %s from %s (%s)", ed.Degree, ed.Institution, ed.Year))
		}
		sections = append(sections, "Education:\n"+strings.Join(lines, "\n"))
	}

	if len(p.Achievements) > 0 {
		var lines []string
		for _, a := range p.Achievements {
			if a != "" {
				lines = append(lines, "  - "+a)
			}
		}
		if len(lines) > 0 {
			sections = append(sections, "Achievements:\n"+strings.Join(lines, "\n"))
		}
	}

	if len(p.Contact) > 0 {
		var pairs []string
		for _, k := range slices.Sorted(maps.Keys(p.Contact)) {
			if v := p.Contact[k]; v != "" {
				pairs = append(pairs, k+": "+v)
			}
		}
		if len(pairs) > 0 {
			sections = append(sections, "Contact Info: "+strings.Join(pairs, ", "))
		}
	}

	if len(sections) < minSections {
		return truncateRunes(resumeText, rawTextLimit)
	}
	return strings.Join(sections, "\n\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
