// Package jobs fetches job listings from the Adzuna search API and scores
// their relevance against a candidate portfolio, with cached results and a
// non-LLM fallback when scoring is unavailable.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careernova/portfolio-engine/internal/types"
)

// DefaultAdzunaBaseURL is the production Adzuna API root.
const DefaultAdzunaBaseURL = "https://api.adzuna.com/v1/api"

// searchTimeout caps one listings-API round trip.
const searchTimeout = 10 * time.Second

// resultsPerPage is the listings page size. Fetching wide gives the scorer
// more candidates to filter from.
const resultsPerPage = 50

// maxSkillsInQuery limits how many portfolio skills form the search query.
const maxSkillsInQuery = 3

// NotConfiguredError reports missing Adzuna credentials.
type NotConfiguredError struct{}

func (e *NotConfiguredError) Error() string {
	return "job search integration is not configured (missing Adzuna keys)"
}

// AdzunaClient searches the Adzuna job listings API.
type AdzunaClient struct {
	AppID   string
	AppKey  string
	BaseURL string

	httpClient *http.Client
}

// NewAdzunaClient builds a client for the production Adzuna endpoint.
func NewAdzunaClient(appID, appKey string) *AdzunaClient {
	return &AdzunaClient{
		AppID:      appID,
		AppKey:     appKey,
		BaseURL:    DefaultAdzunaBaseURL,
		httpClient: &http.Client{Timeout: searchTimeout},
	}
}

// adzunaResponse mirrors the slice of the Adzuna search payload we consume.
type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Description string   `json:"description"`
	RedirectURL string   `json:"redirect_url"`
}

// Search fetches one page of listings matching the candidate's skills and
// filter. The query is the filter's explicit override, else the top three
// skills, else a generic fallback. An upstream error status yields an empty
// result, not an error: the caller still gets an answer.
func (c *AdzunaClient) Search(ctx context.Context, skills []string, filter types.JobFilter, country string) ([]types.JobRecord, error) {
	if c.AppID == "" || c.AppKey == "" {
		log.Printf("jobs: adzuna credentials not configured")
		return nil, &NotConfiguredError{}
	}

	query := filter.What
	if query == "" && len(skills) > 0 {
		n := min(len(skills), maxSkillsInQuery)
		query = strings.Join(skills[:n], " ")
	}
	if query == "" {
		query = "software engineer"
	}

	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("results_per_page", fmt.Sprint(resultsPerPage))
	params.Set("what", query)
	if filter.Location != "" {
		params.Set("where", filter.Location)
	}
	if filter.SalaryMin > 0 {
		params.Set("salary_min", fmt.Sprint(filter.SalaryMin))
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/1?%s", c.BaseURL, country, params.Encode())
	log.Printf("jobs: fetching listings country=%s query=%q", country, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build adzuna request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("jobs: adzuna returned status=%d", resp.StatusCode)
		return nil, nil
	}

	var payload adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode adzuna response: %w", err)
	}

	records := make([]types.JobRecord, 0, len(payload.Results))
	for _, j := range payload.Results {
		if filter.Remote && !mentionsRemote(j.Title, j.Description) {
			continue
		}
		rec := types.JobRecord{
			ID:          j.ID.String(),
			Title:       j.Title,
			Company:     j.Company.DisplayName,
			Location:    j.Location.DisplayName,
			SalaryMin:   j.SalaryMin,
			SalaryMax:   j.SalaryMax,
			Description: j.Description,
			URL:         j.RedirectURL,
		}
		if rec.Company == "" {
			rec.Company = "Unknown"
		}
		if rec.Location == "" {
			rec.Location = "Unknown"
		}
		records = append(records, rec)
	}
	return records, nil
}

// mentionsRemote reports whether a listing advertises remote work in its
// title or description.
func mentionsRemote(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	return strings.Contains(text, "remote") || strings.Contains(text, "work from home")
}
