// Package server provides the HTTP REST API for the portfolio engine.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careernova/portfolio-engine/internal/ats"
	"github.com/careernova/portfolio-engine/internal/chat"
	"github.com/careernova/portfolio-engine/internal/config"
	"github.com/careernova/portfolio-engine/internal/extraction"
	"github.com/careernova/portfolio-engine/internal/pdftext"
	"github.com/careernova/portfolio-engine/internal/store"
	"github.com/careernova/portfolio-engine/internal/types"
)

// Extractor turns resume text into a structured portfolio.
type Extractor interface {
	Extract(ctx context.Context, resumeText string, opts extraction.Options) (*types.Portfolio, error)
}

// Rewriter produces an ATS-formatted resume from resume text.
type Rewriter interface {
	Rewrite(ctx context.Context, resumeText string, opts ats.Options) (*types.ATSResume, error)
}

// ChatEngine answers visitor questions about a portfolio.
type ChatEngine interface {
	Chat(ctx context.Context, req chat.Request) chat.Answer
}

// JobMatcher returns scored job recommendations for a portfolio.
type JobMatcher interface {
	Recommend(ctx context.Context, slug string, p types.Portfolio, apiKey string, filter types.JobFilter) ([]types.JobRecord, error)
}

// Deps collects the collaborators a Server dispatches to.
type Deps struct {
	Store     store.PortfolioStore
	Extractor Extractor
	Rewriter  Rewriter
	Chat      ChatEngine
	Matcher   JobMatcher

	// PDFText extracts plain text from an uploaded PDF payload.
	// Defaults to pdftext.Extract.
	PDFText func(data []byte) (string, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	deps       Deps
	validate   *validator.Validate
}

// New creates a new server instance.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.PDFText == nil {
		deps.PDFText = pdftext.Extract
	}
	s := &Server{
		cfg:      cfg,
		deps:     deps,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /portfolios", s.handleCreatePortfolio)
	mux.HandleFunc("GET /portfolios/{slug}", s.handleGetPortfolio)
	mux.HandleFunc("DELETE /portfolios/{slug}", s.handleDeletePortfolio)
	mux.HandleFunc("POST /portfolios/{slug}/chat", s.handleChat)
	mux.HandleFunc("GET /portfolios/{slug}/jobs", s.handleJobs)
	mux.HandleFunc("GET /portfolios/{slug}/ats", s.handleATSResume)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // extraction calls can run long
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler stack for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-OpenRouter-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging tags every request with an id and logs timing.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		log.Printf("[%s] %s %s id=%s", r.Method, r.URL.Path, r.RemoteAddr, requestID)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v id=%s", r.Method, r.URL.Path, time.Since(start), requestID)
	})
}

// apiKey resolves the OpenRouter credential for a request: callers may
// supply their own key per request, else the configured key applies.
func (s *Server) apiKey(r *http.Request) string {
	if key := r.Header.Get("X-OpenRouter-Key"); key != "" {
		return key
	}
	return s.cfg.OpenRouterAPIKey
}
