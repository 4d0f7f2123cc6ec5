// Package server is the HTTP layer in front of the scoring engine.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/interview"
	"github.com/spigell/ats-scorer/internal/metrics"
)

// Analyzer scores a resume text against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*ats.Analysis, error)
}

// Predictor estimates the interview probability.
type Predictor interface {
	Predict(ctx context.Context, req interview.Request) (*interview.Prediction, error)
}

// TextExtractor turns uploaded files into text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*document.Document, error)
}

// Config holds HTTP layer settings.
type Config struct {
	CORSOrigins        []string
	RateLimitPerMinute int
	MaxUploadBytes     int64
	// AnalysisTimeout bounds each engine call; zero means no limit.
	AnalysisTimeout time.Duration
}

// Server wires handlers to their collaborators. A nil Analyzer or Predictor makes
// the matching endpoint answer 501.
type Server struct {
	cfg       Config
	analyzer  Analyzer
	predictor Predictor
	extractor TextExtractor
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// New creates a Server. A nil collector creates a private one.
func New(cfg Config, analyzer Analyzer, predictor Predictor, extractor TextExtractor, collector *metrics.Collector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if extractor == nil {
		extractor = document.NewExtractor(logger)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}

	return &Server{
		cfg:       cfg,
		analyzer:  analyzer,
		predictor: predictor,
		extractor: extractor,
		metrics:   collector,
		logger:    logger,
	}
}

// Router builds the HTTP handler with middlewares and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.accessLog)
	r.Use(s.metrics.Middleware)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api/ai", func(ar chi.Router) {
		if s.cfg.RateLimitPerMinute > 0 {
			ar.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))
		}
		ar.Post("/resume-compatibility", s.handleResumeCompatibility)
		ar.Post("/interview-probability", s.handleInterviewProbability)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}

		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("panic in handler",
					zap.Any("panic", rec),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
