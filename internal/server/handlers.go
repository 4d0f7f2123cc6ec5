package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/interview"
)

const (
	fieldResume         = "resumePdf"
	fieldJobDescription = "jobDescription"
	fieldProfileSummary = "profileSummary"
)

func (s *Server) handleResumeCompatibility(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeErr(w, ai.ErrNotConfigured)
		return
	}

	if err := s.parseForm(w, r); err != nil {
		writeErr(w, err)
		return
	}

	jobDescription := r.FormValue(fieldJobDescription)
	if strings.TrimSpace(jobDescription) == "" {
		writeError(w, http.StatusBadRequest, "jobDescription is required")
		return
	}

	data, err := readUpload(r, fieldResume)
	if err != nil {
		writeErr(w, err)
		return
	}
	if data == nil {
		writeError(w, http.StatusBadRequest, "resumePdf is required")
		return
	}

	doc, err := s.extractor.Extract(r.Context(), data)
	if err != nil {
		writeErr(w, err)
		return
	}

	ctx, cancel := s.analysisContext(r.Context())
	defer cancel()

	analysis, err := s.analyzer.Analyze(ctx, doc.Text, jobDescription)
	if err != nil {
		s.logger.Warn("resume compatibility failed",
			zap.String("request_id", requestID(r)),
			zap.Error(err),
		)
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleInterviewProbability(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		writeErr(w, ai.ErrNotConfigured)
		return
	}

	if err := s.parseForm(w, r); err != nil {
		writeErr(w, err)
		return
	}

	req := interview.Request{
		ProfileSummary: r.FormValue(fieldProfileSummary),
		JobDescription: r.FormValue(fieldJobDescription),
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "jobDescription is required")
		return
	}
	if strings.TrimSpace(req.ProfileSummary) == "" {
		writeError(w, http.StatusBadRequest, "profileSummary is required")
		return
	}

	data, err := readUpload(r, fieldResume)
	if err != nil {
		writeErr(w, err)
		return
	}
	if data != nil {
		doc, err := s.extractor.Extract(r.Context(), data)
		if err != nil {
			writeErr(w, err)
			return
		}
		req.ResumeText = doc.Text
	}

	ctx, cancel := s.analysisContext(r.Context())
	defer cancel()

	prediction, err := s.predictor.Predict(ctx, req)
	if err != nil {
		s.logger.Warn("interview probability failed",
			zap.String("request_id", requestID(r)),
			zap.Error(err),
		)
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			// Text-only submissions are allowed as url-encoded forms.
			if perr := r.ParseForm(); perr != nil {
				return requestError(perr)
			}
			return nil
		}
		return requestError(err)
	}
	return nil
}

// readUpload returns the uploaded file content, or nil when the field is absent.
func readUpload(r *http.Request, field string) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, requestError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, requestError(err)
	}
	return data, nil
}

func (s *Server) analysisContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.AnalysisTimeout > 0 {
		return context.WithTimeout(parent, s.cfg.AnalysisTimeout)
	}
	return context.WithCancel(parent)
}
