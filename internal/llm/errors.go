package llm

import "fmt"

// RateLimitError indicates the upstream endpoint returned HTTP 429 for a model.
type RateLimitError struct {
	Model string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("model %s rate limited (429)", e.Model)
}

// UpstreamError indicates a non-success response from the completion endpoint.
// Body carries the response body truncated for diagnostics.
type UpstreamError struct {
	Model  string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model %s upstream error %d: %s", e.Model, e.Status, e.Body)
}

// TimeoutError indicates a completion call exceeded its deadline.
type TimeoutError struct {
	Model string
	Cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model %s call timed out: %v", e.Model, e.Cause)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// CredentialsError indicates a missing or empty API credential.
// It is fatal: the orchestrator does not advance past it.
type CredentialsError struct {
	Provider string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("%s API key is not configured", e.Provider)
}

// ExhaustedError indicates every candidate model failed.
// Last carries the final underlying error for diagnostics.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d LLM models failed, last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
