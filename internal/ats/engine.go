// Package ats scores a resume against a job description.
//
// An analysis is a sequential pipeline: requirement extraction (fatal), skill
// matching, responsibility evaluation (degrades), keyword matching, formatting
// heuristic, rubric composition and tip generation (degrades).
package ats

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/taxonomy"
	"github.com/spigell/ats-scorer/internal/textmatch"
)

// Options tunes the model calls of the pipeline.
type Options struct {
	ExtractionTemperature float32
	EvaluationTemperature float32
	TipsTemperature       float32
	MaxLogLength          int
}

// DefaultOptions returns the temperatures used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExtractionTemperature: 0.2,
		EvaluationTemperature: 0.2,
		TipsTemperature:       0.3,
		MaxLogLength:          200,
	}
}

// Engine runs analyses. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	generator ai.TextGenerator
	taxonomy  *taxonomy.Taxonomy
	opts      Options
	logger    *zap.Logger
	observer  Observer
}

// New creates an Engine. A nil taxonomy means taxonomy.Default(); nil logger and
// observer disable logging and metrics.
func New(generator ai.TextGenerator, tax *taxonomy.Taxonomy, opts Options, log *zap.Logger, observer Observer) *Engine {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if d, ok := generator.(ai.Describer); ok {
		log = logger.WithCommonFields(log, d.Provider(), d.Model())
	}

	return &Engine{
		generator: generator,
		taxonomy:  tax,
		opts:      opts,
		logger:    log,
		observer:  observer,
	}
}

// runState carries stage outputs through one analysis.
type runState struct {
	resumeText     string
	jobDescription string
	haystack       *textmatch.Haystack
	llm            *ai.JSONClient

	requirements     Requirements
	matchedRequired  []string
	matchedPreferred []string
	skills           SkillsReport
	verdicts         []ResponsibilityVerdict
	keywords         KeywordsReport
	formatting       int
	breakdown        Breakdown
	total            int
	tips             []string
}

// Analyze scores resumeText against jobDescription. It returns either a complete
// Analysis or a *StageError from requirement extraction. The engine sets no
// timeout of its own; callers bound latency through ctx.
func (e *Engine) Analyze(ctx context.Context, resumeText, jobDescription string) (*Analysis, error) {
	if e.generator == nil {
		return nil, ai.ErrNotConfigured
	}

	id := uuid.NewString()
	log := logger.WithAnalysisID(e.logger, id)

	st := &runState{
		resumeText:     resumeText,
		jobDescription: jobDescription,
		haystack:       textmatch.NewHaystack(resumeText),
		llm:            ai.NewJSONClient(e.generator, log, e.opts.MaxLogLength),
	}

	log.Debug("analysis started",
		zap.Int("resume_length", len(resumeText)),
		zap.Int("job_description_length", len(jobDescription)),
	)

	reports, err := runStages(ctx, log, e.observer, st, e.stages())
	if err != nil {
		return nil, err
	}

	analysis := st.result()
	analysis.ID = id
	analysis.Stages = reports

	e.observer.ObserveAnalysis(analysis)

	log.Info("analysis completed",
		zap.Int("score_total", analysis.ScoreTotal),
		zap.Int("skills", analysis.Breakdown.Skills),
		zap.Int("role_fit", analysis.Breakdown.RoleFit),
		zap.Int("keywords", analysis.Breakdown.Keywords),
		zap.Int("formatting", analysis.Breakdown.Formatting),
	)

	return analysis, nil
}

func (e *Engine) stages() []stage {
	return []stage{
		{name: StageExtractRequirements, policy: PolicyFatal, run: e.extractRequirements},
		{name: StageMatchSkills, policy: PolicyFatal, run: e.matchSkills},
		{
			name:     StageEvaluateResponsibilities,
			policy:   PolicyDegrade,
			run:      e.evaluateResponsibilities,
			fallback: unsupportedFallback,
		},
		{name: StageMatchKeywords, policy: PolicyFatal, run: matchKeywords},
		{name: StageScoreFormatting, policy: PolicyFatal, run: scoreFormatting},
		{name: StageComposeRubric, policy: PolicyFatal, run: composeRubric},
		{
			name:     StageGenerateTips,
			policy:   PolicyDegrade,
			run:      e.generateTips,
			fallback: noTipsFallback,
		},
	}
}

func (st *runState) result() *Analysis {
	verdicts := st.verdicts
	if verdicts == nil {
		verdicts = []ResponsibilityVerdict{}
	}
	tips := st.tips
	if tips == nil {
		tips = []string{}
	}

	return &Analysis{
		ScoreTotal:       st.total,
		Breakdown:        st.breakdown,
		Skills:           st.skills,
		Responsibilities: verdicts,
		Keywords:         st.keywords,
		Tips:             tips,
	}
}
