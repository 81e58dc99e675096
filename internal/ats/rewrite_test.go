package ats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careernova/portfolio-engine/internal/llm"
)

type scriptedCompleter struct {
	responses []scripted
	calls     int
}

type scripted struct {
	raw string
	err error
}

func (s *scriptedCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		return "", &llm.UpstreamError{Status: 500, Body: "script exhausted"}
	}
	return s.responses[i].raw, s.responses[i].err
}

const atsResponse = `{
  "personal_info": {"name": "Ada Lovelace", "email": "ada@example.com"},
  "professional_summary": "Engineer with a focus on analytical computing.",
  "skills": {"Languages": ["Go", "Python"]},
  "experience": [
    {"role": "Analyst", "company": "Babbage & Co", "location": "London", "date": "1842 - 1843", "bullets": ["Wrote the first published algorithm."]}
  ],
  "certifications": []
}`

func TestRewrite_ParsesTypedResume(t *testing.T) {
	client := &scriptedCompleter{responses: []scripted{{raw: "```json\n" + atsResponse + "\n```"}}}
	r := New(client, "", 0.3, 8192)

	resume, err := r.Rewrite(context.Background(), "resume text", Options{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", resume.PersonalInfo["name"])
	require.Len(t, resume.Experience, 1)
	assert.Equal(t, "Babbage & Co", resume.Experience[0].Company)
	assert.JSONEq(t, `{"Languages": ["Go", "Python"]}`, string(resume.Skills))
}

func TestRewrite_MissingSectionsTolerated(t *testing.T) {
	client := &scriptedCompleter{responses: []scripted{{raw: `{"professional_summary": "Short."}`}}}
	r := New(client, "", 0.3, 8192)

	resume, err := r.Rewrite(context.Background(), "resume text", Options{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, "Short.", resume.ProfessionalSummary)
	assert.Empty(t, resume.Experience)
	assert.Nil(t, resume.PersonalInfo)
}

func TestRewrite_FallsPastBadModel(t *testing.T) {
	client := &scriptedCompleter{responses: []scripted{
		{raw: "no json here"},
		{raw: atsResponse},
	}}
	r := New(client, "", 0.3, 8192)

	resume, err := r.Rewrite(context.Background(), "resume text", Options{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.NotEmpty(t, resume.ProfessionalSummary)
}
