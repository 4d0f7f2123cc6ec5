package ats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/logger"
)

// Stage names.
const (
	StageExtractRequirements      = "extract_requirements"
	StageMatchSkills              = "match_skills"
	StageEvaluateResponsibilities = "evaluate_responsibilities"
	StageMatchKeywords            = "match_keywords"
	StageScoreFormatting          = "score_formatting"
	StageComposeRubric            = "compose_rubric"
	StageGenerateTips             = "generate_tips"
)

// Policy decides what the supervisor does when a stage fails.
type Policy string

const (
	// PolicyFatal aborts the analysis with a *StageError.
	PolicyFatal Policy = "fatal"
	// PolicyDegrade substitutes the stage's documented default and continues.
	PolicyDegrade Policy = "degrade"
)

// Outcome is the recorded result of a stage.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeDegraded Outcome = "degraded"
	OutcomeFailed   Outcome = "failed"
)

// StageReport describes one executed stage.
type StageReport struct {
	Stage    string
	Policy   Policy
	Outcome  Outcome
	Duration time.Duration
	Err      error
}

// StageError is the single fatal error an analysis may return.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Observer receives stage and analysis events, e.g. for metrics.
type Observer interface {
	ObserveStage(report StageReport)
	ObserveAnalysis(analysis *Analysis)
}

type nopObserver struct{}

func (nopObserver) ObserveStage(StageReport)  {}
func (nopObserver) ObserveAnalysis(*Analysis) {}

// errSkipped lets a stage report that it had nothing to do.
var errSkipped = errors.New("stage skipped")

// stage is a single pipeline step operating on the shared run state.
type stage struct {
	name     string
	policy   Policy
	run      func(ctx context.Context, st *runState) error
	fallback func(st *runState)
}

// runStages executes stages in order and applies each stage's policy. Only fatal
// stages can stop the pipeline; degrading stages get their fallback applied.
func runStages(ctx context.Context, log *zap.Logger, observer Observer, st *runState, stages []stage) ([]StageReport, error) {
	reports := make([]StageReport, 0, len(stages))

	for _, s := range stages {
		started := time.Now()
		err := s.run(ctx, st)
		report := StageReport{
			Stage:    s.name,
			Policy:   s.policy,
			Outcome:  OutcomeOK,
			Duration: time.Since(started),
		}

		switch {
		case err == nil:
		case errors.Is(err, errSkipped):
			report.Outcome = OutcomeSkipped
		case s.policy == PolicyDegrade:
			report.Outcome = OutcomeDegraded
			report.Err = err
			if s.fallback != nil {
				s.fallback(st)
			}
		default:
			report.Outcome = OutcomeFailed
			report.Err = err
		}

		reports = append(reports, report)
		observer.ObserveStage(report)

		fields := logger.StageFields(s.name, string(s.policy), string(report.Outcome), report.Duration)
		switch report.Outcome {
		case OutcomeDegraded:
			log.Warn("stage degraded to default", append(fields, zap.Error(err))...)
		case OutcomeFailed:
			log.Error("stage failed", append(fields, zap.Error(err))...)
			return reports, &StageError{Stage: s.name, Err: err}
		default:
			log.Debug("stage completed", fields...)
		}
	}

	return reports, nil
}
