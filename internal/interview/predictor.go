// Package interview predicts the chance of getting an interview for a job.
package interview

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/schemas"
)

var (
	//go:embed prompt.md
	promptTemplate string
	//go:embed schema.json
	schemaJSON string

	predictionSchema = schemas.MustCompile("interview prediction", schemaJSON)
)

const defaultTemperature = 0.3

var (
	// ErrMissingProfile means the profile summary is blank.
	ErrMissingProfile = errors.New("profileSummary is required")
	// ErrMissingJobDescription means the job description is blank.
	ErrMissingJobDescription = errors.New("jobDescription is required")
)

// Request holds the predictor inputs. ResumeText may be empty.
type Request struct {
	ResumeText     string
	ProfileSummary string
	JobDescription string
}

// Prediction is the model's estimate.
type Prediction struct {
	InterviewProbability float64  `json:"interviewProbability"`
	Reasoning            []string `json:"reasoning"`
	Recommendations      []string `json:"recommendations"`
}

// Predictor runs one model call per prediction.
type Predictor struct {
	generator   ai.TextGenerator
	temperature float32
	logger      *zap.Logger
	maxLogLen   int
}

// NewPredictor creates a Predictor. A zero temperature selects the default of 0.3.
func NewPredictor(generator ai.TextGenerator, temperature float32, log *zap.Logger, maxLogLength int) *Predictor {
	if temperature == 0 {
		temperature = defaultTemperature
	}
	if log == nil {
		log = zap.NewNop()
	}
	if d, ok := generator.(ai.Describer); ok {
		log = logger.WithCommonFields(log, d.Provider(), d.Model())
	}

	return &Predictor{
		generator:   generator,
		temperature: temperature,
		logger:      log,
		maxLogLen:   maxLogLength,
	}
}

// Predict returns the interview probability. Non-JSON output, schema mismatches
// and upstream failures are all returned to the caller.
func (p *Predictor) Predict(ctx context.Context, req Request) (*Prediction, error) {
	if p.generator == nil {
		return nil, ai.ErrNotConfigured
	}
	if strings.TrimSpace(req.ProfileSummary) == "" {
		return nil, ErrMissingProfile
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrMissingJobDescription
	}

	prompt := strings.NewReplacer(
		"{{RESUME}}", req.ResumeText,
		"{{PROFILE_SUMMARY}}", req.ProfileSummary,
		"{{JOB_DESCRIPTION}}", req.JobDescription,
	).Replace(promptTemplate)

	client := ai.NewJSONClient(p.generator, p.logger, p.maxLogLen)
	value, err := client.GenerateJSON(ctx, ai.GenerateParams{
		Prompt:      strings.TrimSpace(prompt),
		Temperature: ai.Temperature(p.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("predict interview probability: %w", err)
	}

	var prediction Prediction
	if err := predictionSchema.Decode(value, &prediction); err != nil {
		return nil, fmt.Errorf("predict interview probability: %w", err)
	}

	if prediction.Reasoning == nil {
		prediction.Reasoning = []string{}
	}
	if prediction.Recommendations == nil {
		prediction.Recommendations = []string{}
	}

	p.logger.Info("interview probability predicted",
		zap.Float64("interview_probability", prediction.InterviewProbability),
		zap.Bool("with_resume", strings.TrimSpace(req.ResumeText) != ""),
	)

	return &prediction, nil
}
