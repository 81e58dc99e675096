package llm

import (
	"context"
	"errors"
	"log"
	"time"
)

// modelRetryDelay is the fixed pause between model attempts after a
// transport-level failure. Parse failures advance immediately: the pause is
// rate-limit courtesy toward the endpoint, and a parse failure means the
// endpoint already answered.
const modelRetryDelay = 1 * time.Second

// ParseFunc lets callers validate a model's raw output before the
// orchestrator accepts it. Returning an error counts the model as failed
// and moves on to the next candidate. Callers capture parsed values in a
// closure. A nil ParseFunc accepts any successful response.
type ParseFunc func(raw string) error

// Orchestrator drives a Completer across an ordered candidate-model list
// until one yields a usable response. Each model is attempted at most once
// per Generate call.
type Orchestrator struct {
	client Completer

	// AttemptTimeout bounds each model attempt independently, so a model
	// that stalls out its deadline leaves the remaining candidates a full
	// budget of their own.
	AttemptTimeout time.Duration

	// Sleep implements the fixed inter-model pause. Tests substitute a no-op.
	Sleep func(time.Duration)
}

// NewOrchestrator wraps a Completer with model-fallback behavior.
func NewOrchestrator(client Completer) *Orchestrator {
	return &Orchestrator{
		client:         client,
		AttemptTimeout: GenerationTimeout,
		Sleep:          time.Sleep,
	}
}

// Generate tries each model in order and returns the first response that
// succeeds at the network layer and survives parse. The second return value
// names the model that served the request.
//
// Transient failures (rate limit, timeout, upstream, parse) are converted
// into "try next model"; only credential errors abort early. When every
// candidate fails the returned error is *ExhaustedError wrapping the last
// underlying failure.
func (o *Orchestrator) Generate(ctx context.Context, models []string, req CompletionRequest, parse ParseFunc) (string, string, error) {
	var lastErr error

	for _, model := range models {
		attempt := req
		attempt.Model = model

		attemptCtx, cancel := context.WithTimeout(ctx, o.AttemptTimeout)
		raw, err := o.client.Complete(attemptCtx, attempt)
		cancel()
		if err != nil {
			var credErr *CredentialsError
			if errors.As(err, &credErr) {
				return "", "", err
			}

			log.Printf("llm fallback model=%s transport error: %v", model, err)
			lastErr = err
			o.pause(ctx)
			continue
		}

		if parse != nil {
			if err := parse(raw); err != nil {
				log.Printf("llm fallback model=%s unparseable response: %v", model, err)
				lastErr = err
				continue
			}
		}

		return raw, model, nil
	}

	return "", "", &ExhaustedError{Attempts: len(models), Last: lastErr}
}

func (o *Orchestrator) pause(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	o.Sleep(modelRetryDelay)
}
