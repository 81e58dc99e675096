// Package types provides type definitions for structured data used throughout the portfolio engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Portfolio is the structured career record extracted from a resume.
// After normalization every field is present: list fields are non-nil
// (possibly empty) slices and Contact is a non-nil map.
type Portfolio struct {
	Name         string            `json:"name"`
	Role         string            `json:"role"`
	Tagline      string            `json:"tagline"`
	Bio          string            `json:"bio"`
	Skills       []string          `json:"skills"`
	Projects     []Project         `json:"projects"`
	Experience   []Experience      `json:"experience"`
	Education    []Education       `json:"education"`
	Achievements []string          `json:"achievements"`
	Contact      map[string]string `json:"contact"`
}

// Project is a single project entry on a portfolio.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Experience is a single employment entry on a portfolio.
type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single education entry on a portfolio.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// PortfolioRecord couples a portfolio with the raw resume text it was
// extracted from. The raw text backs the RAG fallback context when the
// structured data is sparse.
type PortfolioRecord struct {
	Slug       string    `json:"slug"`
	Portfolio  Portfolio `json:"portfolio"`
	ResumeText string    `json:"resume_text"`
}
