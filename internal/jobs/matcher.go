package jobs

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/careernova/portfolio-engine/internal/cache"
	"github.com/careernova/portfolio-engine/internal/types"
)

const (
	// cacheTTL and cacheSize bound the recommendation cache.
	cacheTTL  = 10 * time.Minute
	cacheSize = 100
)

// Searcher fetches raw listings. *AdzunaClient satisfies it.
type Searcher interface {
	Search(ctx context.Context, skills []string, filter types.JobFilter, country string) ([]types.JobRecord, error)
}

// RelevanceScorer rates listings against a portfolio. *Scorer satisfies it.
type RelevanceScorer interface {
	Score(ctx context.Context, jobs []types.JobRecord, p types.Portfolio, apiKey string) []types.JobRecord
}

// Matcher is the job-recommendation entrypoint: search, score, cache.
type Matcher struct {
	searcher Searcher
	scorer   RelevanceScorer
	cache    *cache.Cache[[]types.JobRecord]
	group    singleflight.Group
}

// NewMatcher wires a Matcher with its own bounded result cache.
func NewMatcher(searcher Searcher, scorer RelevanceScorer) *Matcher {
	return &Matcher{
		searcher: searcher,
		scorer:   scorer,
		cache:    cache.New[[]types.JobRecord](cacheTTL, cacheSize),
	}
}

// Recommend returns scored job recommendations for the portfolio identified
// by slug. Results are cached per (slug, filter) for the cache window, and
// concurrent identical requests share one upstream search.
func (m *Matcher) Recommend(ctx context.Context, slug string, p types.Portfolio, apiKey string, filter types.JobFilter) ([]types.JobRecord, error) {
	key := slug + "_" + filter.Fingerprint()

	if recs, ok := m.cache.Get(key); ok {
		log.Printf("jobs: cache hit key=%s", key)
		return recs, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		raw, err := m.searcher.Search(ctx, p.Skills, filter, countryFor(p))
		if err != nil {
			return nil, err
		}
		scored := m.scorer.Score(ctx, raw, p, apiKey)
		m.cache.Set(key, scored)
		return scored, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.JobRecord), nil
}

// countryFor picks the Adzuna country market from the portfolio's contact
// phone prefix, defaulting to the US market.
func countryFor(p types.Portfolio) string {
	phone := p.Contact["phone"]
	switch {
	case strings.HasPrefix(phone, "+44"):
		return "gb"
	case strings.HasPrefix(phone, "+91"):
		return "in"
	default:
		return "us"
	}
}
