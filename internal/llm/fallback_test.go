package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns scripted results per call, in order.
type stubCompleter struct {
	results []stubResult
	calls   []string // models attempted, in order
}

type stubResult struct {
	raw string
	err error
}

func (s *stubCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	i := len(s.calls)
	s.calls = append(s.calls, req.Model)
	if i >= len(s.results) {
		return "", errors.New("unexpected extra call")
	}
	return s.results[i].raw, s.results[i].err
}

func newTestOrchestrator(stub *stubCompleter) (*Orchestrator, *[]time.Duration) {
	var slept []time.Duration
	o := NewOrchestrator(stub)
	o.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return o, &slept
}

func TestGenerate_FirstModelSucceeds(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{{raw: `{"ok": true}`}}}
	o, slept := newTestOrchestrator(stub)

	raw, model, err := o.Generate(context.Background(), []string{"model-a", "model-b"}, CompletionRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, raw)
	assert.Equal(t, "model-a", model)
	assert.Len(t, stub.calls, 1)
	assert.Empty(t, *slept)
}

func TestGenerate_RateLimitedUntilLastModel(t *testing.T) {
	models := []string{"m1", "m2", "m3", "m4"}
	stub := &stubCompleter{results: []stubResult{
		{err: &RateLimitError{Model: "m1"}},
		{err: &RateLimitError{Model: "m2"}},
		{err: &RateLimitError{Model: "m3"}},
		{raw: `{"name": "Ada"}`},
	}}
	o, slept := newTestOrchestrator(stub)

	var parsed string
	raw, model, err := o.Generate(context.Background(), models, CompletionRequest{}, func(raw string) error {
		parsed = raw
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Ada"}`, raw)
	assert.Equal(t, `{"name": "Ada"}`, parsed)
	assert.Equal(t, "m4", model)
	assert.Equal(t, models, stub.calls, "exactly one attempt per model")
	assert.Len(t, *slept, 3, "transport failures pause before the next model")
}

func TestGenerate_AllModelsFail(t *testing.T) {
	models := []string{"m1", "m2", "m3"}
	lastErr := &UpstreamError{Model: "m3", Status: 503, Body: "unavailable"}
	stub := &stubCompleter{results: []stubResult{
		{err: &RateLimitError{Model: "m1"}},
		{err: &TimeoutError{Model: "m2", Cause: context.DeadlineExceeded}},
		{err: lastErr},
	}}
	o, _ := newTestOrchestrator(stub)

	_, _, err := o.Generate(context.Background(), models, CompletionRequest{}, nil)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, lastErr, exhausted.Last)
	assert.Len(t, stub.calls, 3, "no model retried twice")
}

func TestGenerate_ParseFailureAdvancesWithoutDelay(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{raw: "this is not JSON"},
		{raw: `{"ok": true}`},
	}}
	o, slept := newTestOrchestrator(stub)

	parseCalls := 0
	raw, model, err := o.Generate(context.Background(), []string{"m1", "m2"}, CompletionRequest{}, func(raw string) error {
		parseCalls++
		if raw != `{"ok": true}` {
			return errors.New("unparseable")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, raw)
	assert.Equal(t, "m2", model)
	assert.Equal(t, 2, parseCalls)
	assert.Empty(t, *slept, "parse failures advance immediately")
}

func TestGenerate_ParseFailureOnAllModels(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{raw: "garbage one"},
		{raw: "garbage two"},
	}}
	o, _ := newTestOrchestrator(stub)

	parseErr := errors.New("still unparseable")
	_, _, err := o.Generate(context.Background(), []string{"m1", "m2"}, CompletionRequest{}, func(string) error {
		return parseErr
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, parseErr, exhausted.Last)
}

func TestGenerate_CredentialsErrorIsFatal(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: &CredentialsError{Provider: "OpenRouter"}},
	}}
	o, _ := newTestOrchestrator(stub)

	_, _, err := o.Generate(context.Background(), []string{"m1", "m2"}, CompletionRequest{}, nil)

	var credErr *CredentialsError
	require.ErrorAs(t, err, &credErr)
	assert.Len(t, stub.calls, 1, "credential failures do not advance to the next model")
}

func TestModelList(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		wantFirst string
		wantLen   int
	}{
		{"empty preferred uses default", "", DefaultModel, len(FallbackModels)},
		{"preferred in fallback list deduplicated", FallbackModels[2], FallbackModels[2], len(FallbackModels)},
		{"novel preferred prepended", "custom/model", "custom/model", len(FallbackModels) + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModelList(tt.preferred)
			assert.Equal(t, tt.wantFirst, got[0])
			assert.Len(t, got, tt.wantLen)

			seen := make(map[string]bool)
			for _, m := range got {
				assert.False(t, seen[m], "duplicate model %s", m)
				seen[m] = true
			}
		})
	}
}

// deadlineCompleter records the context deadline each attempt runs under.
type deadlineCompleter struct {
	results   []stubResult
	deadlines []time.Time
}

func (c *deadlineCompleter) Complete(ctx context.Context, _ CompletionRequest) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return "", errors.New("attempt ran without a deadline")
	}
	i := len(c.deadlines)
	c.deadlines = append(c.deadlines, deadline)
	if i == 0 {
		// First model burns wall-clock time before failing.
		time.Sleep(20 * time.Millisecond)
	}
	return c.results[i].raw, c.results[i].err
}

func TestGenerate_EachAttemptGetsFreshDeadline(t *testing.T) {
	stub := &deadlineCompleter{results: []stubResult{
		{err: &TimeoutError{Model: "m1", Cause: context.DeadlineExceeded}},
		{raw: `{"ok": true}`},
	}}
	o := NewOrchestrator(stub)
	o.Sleep = func(time.Duration) {}

	raw, model, err := o.Generate(context.Background(), []string{"m1", "m2"}, CompletionRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, raw)
	assert.Equal(t, "m2", model)

	require.Len(t, stub.deadlines, 2)
	assert.True(t, stub.deadlines[1].After(stub.deadlines[0]),
		"second model must get its own budget, not the remainder of the first attempt's")
}
