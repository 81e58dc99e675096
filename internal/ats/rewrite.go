// Package ats produces ATS-optimized resume data from raw resume text.
package ats

import (
	"context"
	"encoding/json"
	"log"

	"github.com/careernova/portfolio-engine/internal/jsonrepair"
	"github.com/careernova/portfolio-engine/internal/llm"
	"github.com/careernova/portfolio-engine/internal/prompts"
	"github.com/careernova/portfolio-engine/internal/types"
)

// Rewriter runs the ATS-rewrite task with model fallback.
type Rewriter struct {
	orch         *llm.Orchestrator
	defaultModel string
	temperature  float32
	maxTokens    int
}

// Options carries per-request parameters for a rewrite call.
type Options struct {
	APIKey         string
	PreferredModel string
}

// New creates a Rewriter over the given completion client.
func New(client llm.Completer, defaultModel string, temperature float32, maxTokens int) *Rewriter {
	if defaultModel == "" {
		defaultModel = llm.DefaultModel
	}
	return &Rewriter{
		orch:         llm.NewOrchestrator(client),
		defaultModel: defaultModel,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// Rewrite turns resume text into an ATS-friendly structured resume.
// Unlike portfolio extraction there is no defaulting pass: consumers of the
// result tolerate missing sections.
func (r *Rewriter) Rewrite(ctx context.Context, resumeText string, opts Options) (*types.ATSResume, error) {
	template := prompts.MustGet("ats.json", "ats-rewrite")
	prompt := prompts.Format(template, map[string]string{"ResumeText": resumeText})

	preferred := opts.PreferredModel
	if preferred == "" {
		preferred = r.defaultModel
	}

	var resume types.ATSResume
	_, model, err := r.orch.Generate(ctx, llm.ModelList(preferred), llm.CompletionRequest{
		APIKey:      opts.APIKey,
		Prompt:      prompt,
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	}, func(raw string) error {
		obj, err := jsonrepair.Object(raw)
		if err != nil {
			return err
		}
		// Round-trip through the repaired object so fenced or
		// comma-damaged output still decodes into the typed resume.
		buf, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		resume = types.ATSResume{}
		return json.Unmarshal(buf, &resume)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("ats resume generated model=%s experience=%d projects=%d",
		model, len(resume.Experience), len(resume.Projects))
	return &resume, nil
}
