package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careernova/portfolio-engine/internal/types"
)

// countingSearcher returns canned listings and counts calls.
type countingSearcher struct {
	listings  []types.JobRecord
	err       error
	calls     int
	countries []string
}

func (s *countingSearcher) Search(_ context.Context, _ []string, _ types.JobFilter, country string) ([]types.JobRecord, error) {
	s.calls++
	s.countries = append(s.countries, country)
	return s.listings, s.err
}

// passthroughScorer stamps a fixed score on every listing.
type passthroughScorer struct{}

func (passthroughScorer) Score(_ context.Context, jobs []types.JobRecord, _ types.Portfolio, _ string) []types.JobRecord {
	out := make([]types.JobRecord, len(jobs))
	for i, j := range jobs {
		j.MatchScore = 90
		out[i] = j
	}
	return out
}

func TestRecommendCachesResults(t *testing.T) {
	searcher := &countingSearcher{listings: makeListings(2)}
	m := NewMatcher(searcher, passthroughScorer{})

	first, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{Location: "London"})
	require.NoError(t, err)
	second, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{Location: "London"})
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls, "second request must be served from cache")
	assert.Equal(t, first, second)
}

func TestRecommendDistinctFiltersMiss(t *testing.T) {
	searcher := &countingSearcher{listings: makeListings(1)}
	m := NewMatcher(searcher, passthroughScorer{})

	_, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{Location: "London"})
	require.NoError(t, err)
	_, err = m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{Location: "Paris"})
	require.NoError(t, err)

	assert.Equal(t, 2, searcher.calls)
}

func TestRecommendDistinctSlugsMiss(t *testing.T) {
	searcher := &countingSearcher{listings: makeListings(1)}
	m := NewMatcher(searcher, passthroughScorer{})

	_, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{})
	require.NoError(t, err)
	_, err = m.Recommend(context.Background(), "grace", scorerPortfolio(), "key", types.JobFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, searcher.calls)
}

func TestRecommendSearchErrorPropagates(t *testing.T) {
	searcher := &countingSearcher{err: &NotConfiguredError{}}
	m := NewMatcher(searcher, passthroughScorer{})

	_, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{})

	var notConfigured *NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
}

func TestRecommendCountryHeuristic(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"uk prefix", "+44 20 7946 0958", "gb"},
		{"india prefix", "+91 98765 43210", "in"},
		{"us number", "+1 555 0100", "us"},
		{"no phone", "", "us"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &countingSearcher{}
			m := NewMatcher(searcher, passthroughScorer{})

			p := scorerPortfolio()
			if tt.phone != "" {
				p.Contact = map[string]string{"phone": tt.phone}
			}
			_, err := m.Recommend(context.Background(), "slug-"+tt.name, p, "key", types.JobFilter{})
			require.NoError(t, err)
			require.Len(t, searcher.countries, 1)
			assert.Equal(t, tt.want, searcher.countries[0])
		})
	}
}

// blockingSearcher holds every Search call open until released, counting
// how many actually reach it.
type blockingSearcher struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *blockingSearcher) Search(_ context.Context, _ []string, _ types.JobFilter, _ string) ([]types.JobRecord, error) {
	s.calls.Add(1)
	s.entered <- struct{}{}
	<-s.release
	return makeListings(2), nil
}

func TestRecommendConcurrentIdenticalRequestsShareOneSearch(t *testing.T) {
	searcher := &blockingSearcher{
		entered: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	m := NewMatcher(searcher, passthroughScorer{})

	const callers = 4
	results := make([][]types.JobRecord, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recs, err := m.Recommend(context.Background(), "ada", scorerPortfolio(), "key", types.JobFilter{Location: "London"})
			assert.NoError(t, err)
			results[i] = recs
		}(i)
	}

	// Wait until the first caller is inside Search, give the rest time to
	// join the in-flight group, then let the search finish.
	<-searcher.entered
	time.Sleep(50 * time.Millisecond)
	close(searcher.release)
	wg.Wait()

	assert.Equal(t, int32(1), searcher.calls.Load(), "identical concurrent searches must share one upstream call")
	for i := 1; i < callers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}
