package types

import "encoding/json"

// ATSResume is the ATS-optimized rewrite of a resume produced by the LLM.
// Unlike Portfolio, no normalization pass is applied to it: callers must
// tolerate missing keys, and Skills keeps its raw JSON shape because models
// return either a category map or a flat list.
type ATSResume struct {
	PersonalInfo        map[string]string `json:"personal_info,omitempty"`
	ProfessionalSummary string            `json:"professional_summary,omitempty"`
	Skills              json.RawMessage   `json:"skills,omitempty"`
	Experience          []ATSExperience   `json:"experience,omitempty"`
	Projects            []ATSProject      `json:"projects,omitempty"`
	Education           []ATSEducation    `json:"education,omitempty"`
	Certifications      []string          `json:"certifications,omitempty"`
}

// ATSExperience is one employment entry in an ATS resume.
type ATSExperience struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Date     string   `json:"date"`
	Bullets  []string `json:"bullets"`
}

// ATSProject is one project entry in an ATS resume.
type ATSProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Bullets      []string `json:"bullets"`
}

// ATSEducation is one education entry in an ATS resume.
type ATSEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Date        string `json:"date"`
	Details     string `json:"details"`
}
