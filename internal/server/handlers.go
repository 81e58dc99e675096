package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/careernova/portfolio-engine/internal/ats"
	"github.com/careernova/portfolio-engine/internal/chat"
	"github.com/careernova/portfolio-engine/internal/extraction"
	"github.com/careernova/portfolio-engine/internal/types"
)

// CreatePortfolioResponse is the response for POST /portfolios.
type CreatePortfolioResponse struct {
	Slug      string          `json:"slug"`
	Portfolio types.Portfolio `json:"portfolio"`
	Fallback  bool            `json:"fallback"`
}

// ChatRequest is the request body for POST /portfolios/{slug}/chat.
type ChatRequest struct {
	Message string           `json:"message" validate:"required,max=4000"`
	History []types.ChatTurn `json:"history,omitempty" validate:"max=50"`
}

// ChatResponse is the response for POST /portfolios/{slug}/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
}

// JobsResponse is the response for GET /portfolios/{slug}/jobs.
type JobsResponse struct {
	Jobs []types.JobRecord `json:"jobs"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreatePortfolio accepts a multipart PDF upload, extracts a
// structured portfolio from it and stores the result. Extraction failure
// still yields a stored generic portfolio so the upload never dead-ends.
func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxPDFSizeMB)<<20)

	file, _, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file: "+err.Error())
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file: "+err.Error())
		return
	}

	resumeText, err := s.deps.PDFText(payload)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	username := r.FormValue("username")
	slug := slugify(username)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	rec := types.PortfolioRecord{Slug: slug, ResumeText: resumeText}
	fallback := false

	portfolio, err := s.deps.Extractor.Extract(r.Context(), resumeText, extraction.Options{
		APIKey:         s.apiKey(r),
		PreferredModel: r.FormValue("model"),
		Username:       username,
	})
	if err != nil {
		log.Printf("server: extraction failed for slug=%s, storing fallback portfolio: %v", slug, err)
		rec.Portfolio = extraction.FallbackPortfolio(username)
		fallback = true
	} else {
		rec.Portfolio = *portfolio
	}

	if err := s.deps.Store.Put(r.Context(), rec); err != nil {
		s.errorFor(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreatePortfolioResponse{
		Slug:      rec.Slug,
		Portfolio: rec.Portfolio,
		Fallback:  fallback,
	})
}

// handleGetPortfolio returns a stored portfolio record.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Store.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeletePortfolio removes a stored portfolio.
func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Delete(r.Context(), r.PathValue("slug")); err != nil {
		s.errorFor(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleChat answers a visitor question against a stored portfolio.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	slug := r.PathValue("slug")
	rec, err := s.deps.Store.Get(r.Context(), slug)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	ans := s.deps.Chat.Chat(r.Context(), chat.Request{
		Slug:       slug,
		Message:    req.Message,
		Portfolio:  rec.Portfolio,
		ResumeText: rec.ResumeText,
		History:    req.History,
	})
	s.jsonResponse(w, http.StatusOK, ChatResponse{Reply: ans.Text, Mode: string(ans.Mode)})
}

// handleJobs returns scored job recommendations for a stored portfolio.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	rec, err := s.deps.Store.Get(r.Context(), slug)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	filter, err := jobFilterFromQuery(r)
	if err != nil {
		s.errorFor(w, err)
		return
	}

	recs, err := s.deps.Matcher.Recommend(r.Context(), slug, rec.Portfolio, s.apiKey(r), filter)
	if err != nil {
		s.errorFor(w, err)
		return
	}
	if recs == nil {
		recs = []types.JobRecord{}
	}
	s.jsonResponse(w, http.StatusOK, JobsResponse{Jobs: recs})
}

// handleATSResume rewrites the stored resume text into ATS-friendly
// structured form.
func (s *Server) handleATSResume(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Store.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.errorFor(w, err)
		return
	}

	resume, err := s.deps.Rewriter.Rewrite(r.Context(), rec.ResumeText, ats.Options{
		APIKey:         s.apiKey(r),
		PreferredModel: r.URL.Query().Get("model"),
	})
	if err != nil {
		s.errorFor(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func jobFilterFromQuery(r *http.Request) (types.JobFilter, error) {
	q := r.URL.Query()
	filter := types.JobFilter{
		Location: q.Get("location"),
		Level:    q.Get("level"),
		What:     q.Get("what"),
	}
	if v := q.Get("remote"); v != "" {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			return types.JobFilter{}, &ErrValidation{Field: "remote", Message: "must be a boolean"}
		}
		filter.Remote = remote
	}
	if v := q.Get("salary_min"); v != "" {
		salaryMin, err := strconv.Atoi(v)
		if err != nil || salaryMin < 0 {
			return types.JobFilter{}, &ErrValidation{Field: "salary_min", Message: "must be a non-negative integer"}
		}
		filter.SalaryMin = salaryMin
	}
	return filter, nil
}

// slugify lowers a username and keeps only letters, digits and dashes.
func slugify(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(username)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
