package ats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-scorer/internal/ai"
)

const (
	sampleResume = "Experienced with MySQL and containerization via Docker. Built CI/CD pipelines in Go."
	sampleJob    = "We need a backend engineer with MySQL, Docker and Kubernetes. Python is a plus."

	sampleExtraction = `{
  "requiredSkills": ["MySQL", "Docker", "Kubernetes", "Docker"],
  "preferredSkills": ["Python", "MySQL", "NotASkill"],
  "responsibilities": ["Design APIs", "Run on-call", "  "],
  "keywords": ["CI/CD", "Go", "remote-first"]
}`
	sampleVerdicts = "```json\n" + `[
  {"text": "Design APIs", "supported": true, "evidence": "Built CI/CD pipelines"},
  {"text": "", "supported": false, "evidence": null}
]` + "\n```"
	sampleTips = "```json\n{\"tips\": [\"Add Kubernetes projects\", \" \"]}\n```"
)

func sampleGenerator() *scriptedGenerator {
	return newScriptedGenerator().
		on(kindExtract, sampleExtraction).
		on(kindResponsibilities, sampleVerdicts).
		on(kindTips, sampleTips)
}

func newTestEngine(gen ai.TextGenerator, obs Observer) *Engine {
	return New(gen, nil, DefaultOptions(), zap.NewNop(), obs)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	t.Parallel()

	gen := sampleGenerator()
	obs := &recordingObserver{}

	analysis, err := newTestEngine(gen, obs).Analyze(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, SkillsReport{
		Required:  []string{"Docker", "Kubernetes", "MySQL"},
		Preferred: []string{"Python"},
		Matched:   []string{"Docker", "MySQL"},
		Missing:   []string{"Kubernetes", "Python"},
	}, analysis.Skills)

	assert.Equal(t, KeywordsReport{
		Important: []string{"CI/CD", "Go", "remote-first"},
		Matched:   []string{"CI/CD", "Go"},
		Missing:   []string{"remote-first"},
	}, analysis.Keywords)

	require.Len(t, analysis.Responsibilities, 2)
	assert.Equal(t, "Design APIs", analysis.Responsibilities[0].Text)
	assert.True(t, analysis.Responsibilities[0].Supported)
	require.NotNil(t, analysis.Responsibilities[0].Evidence)
	assert.Equal(t, "Built CI/CD pipelines", *analysis.Responsibilities[0].Evidence)
	assert.Equal(t, ResponsibilityVerdict{Text: "Run on-call"}, analysis.Responsibilities[1])

	// skills 40*2/3, roleFit 25*1/2, keywords 15*2/3, formatting 1 (distinct characters only).
	assert.Equal(t, Breakdown{Skills: 27, RoleFit: 13, Keywords: 10, Formatting: 1}, analysis.Breakdown)
	assert.Equal(t, 50, analysis.ScoreTotal)

	assert.Equal(t, []string{"Add Kubernetes projects"}, analysis.Tips)

	require.Len(t, analysis.Stages, 7)
	for _, report := range analysis.Stages {
		assert.Equal(t, OutcomeOK, report.Outcome, report.Stage)
	}
	assert.Len(t, obs.stages, 7)
	require.Len(t, obs.analyses, 1)
	assert.Same(t, analysis, obs.analyses[0])
}

func TestAnalyzePromptsAndTemperatures(t *testing.T) {
	t.Parallel()

	gen := sampleGenerator()
	_, err := newTestEngine(gen, nil).Analyze(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	extract := gen.callsOf(kindExtract)
	require.Len(t, extract, 1)
	assert.InDelta(t, 0.2, *extract[0].params.Temperature, 1e-6)
	assert.Contains(t, extract[0].params.Prompt, "- Kubernetes\n")
	assert.Contains(t, extract[0].params.Prompt, "requiredSkills max 25, preferredSkills max 15.")
	assert.True(t, strings.HasSuffix(extract[0].params.Prompt, sampleJob))

	resp := gen.callsOf(kindResponsibilities)
	require.Len(t, resp, 1)
	assert.InDelta(t, 0.2, *resp[0].params.Temperature, 1e-6)
	assert.Contains(t, resp[0].params.Prompt, "1. Design APIs\n2. Run on-call\n")
	assert.NotContains(t, resp[0].params.Prompt, "3.")

	tips := gen.callsOf(kindTips)
	require.Len(t, tips, 1)
	assert.InDelta(t, 0.3, *tips[0].params.Temperature, 1e-6)
	assert.Contains(t, tips[0].params.Prompt, "MISSING REQUIRED SKILLS: Kubernetes\n")
	assert.Contains(t, tips[0].params.Prompt, "MISSING OTHER SKILLS: Python\n")
	assert.Contains(t, tips[0].params.Prompt, "UNSUPPORTED RESPONSIBILITIES: Run on-call\n")
}

func TestAnalyzeExtractionFailureIsFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		gen    *scriptedGenerator
		target error
	}{
		{
			name:   "non json",
			gen:    newScriptedGenerator().on(kindExtract, "Sure! The job needs Go."),
			target: ai.ErrNonJSONOutput,
		},
		{
			name:   "wrong shape",
			gen:    newScriptedGenerator().on(kindExtract, `{"requiredSkills": "Go"}`),
			target: ai.ErrSchemaValidation,
		},
		{
			name:   "array instead of object",
			gen:    newScriptedGenerator().on(kindExtract, `["Go"]`),
			target: ai.ErrSchemaValidation,
		},
		{
			name:   "over cap",
			gen:    newScriptedGenerator().on(kindExtract, fmt.Sprintf(`{"responsibilities": [%s]}`, strings.TrimSuffix(strings.Repeat(`"x",`, 13), ","))),
			target: ai.ErrSchemaValidation,
		},
		{
			name:   "upstream",
			gen:    newScriptedGenerator().fail(kindExtract, ai.NewUpstreamError("gemini", 429, errors.New("quota"))),
			target: ai.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obs := &recordingObserver{}
			analysis, err := newTestEngine(tt.gen, obs).Analyze(context.Background(), sampleResume, sampleJob)
			require.Error(t, err)
			assert.Nil(t, analysis)
			assert.ErrorIs(t, err, tt.target)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.Equal(t, StageExtractRequirements, stageErr.Stage)

			assert.Empty(t, tt.gen.callsOf(kindResponsibilities))
			assert.Empty(t, tt.gen.callsOf(kindTips))
			require.Len(t, obs.stages, 1)
			assert.Equal(t, OutcomeFailed, obs.stages[0].Outcome)
			assert.Empty(t, obs.analyses)
		})
	}
}

func TestAnalyzeResponsibilityFailureDegrades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply reply
	}{
		{name: "upstream", reply: reply{err: ai.NewUpstreamError("openai", 500, errors.New("boom"))}},
		{name: "non json", reply: reply{text: "I think all of them are supported."}},
		{name: "object instead of array", reply: reply{text: `{"text": "Design APIs", "supported": true}`}},
		{name: "missing supported", reply: reply{text: `[{"text": "Design APIs"}]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := newScriptedGenerator().on(kindExtract, sampleExtraction).on(kindTips, sampleTips)
			gen.replies[kindResponsibilities] = []reply{tt.reply}

			analysis, err := newTestEngine(gen, nil).Analyze(context.Background(), sampleResume, sampleJob)
			require.NoError(t, err)

			assert.Equal(t, []ResponsibilityVerdict{
				{Text: "Design APIs", Supported: false, Evidence: nil},
				{Text: "Run on-call", Supported: false, Evidence: nil},
			}, analysis.Responsibilities)
			assert.Equal(t, 0, analysis.Breakdown.RoleFit)
			assert.Equal(t, OutcomeDegraded, analysis.Stages[2].Outcome)
			assert.Equal(t, []string{"Add Kubernetes projects"}, analysis.Tips)

			tips := gen.callsOf(kindTips)
			require.Len(t, tips, 1)
			assert.Contains(t, tips[0].params.Prompt, "UNSUPPORTED RESPONSIBILITIES: Design APIs | Run on-call\n")
		})
	}
}

func TestAnalyzeTipsFailureDegrades(t *testing.T) {
	t.Parallel()

	baseline, err := newTestEngine(sampleGenerator(), nil).Analyze(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	tooMany := `{"tips": [` + strings.TrimSuffix(strings.Repeat(`"tip",`, 11), ",") + `]}`

	tests := []struct {
		name  string
		reply reply
	}{
		{name: "upstream", reply: reply{err: ai.NewUpstreamError("gemini", 0, context.DeadlineExceeded)}},
		{name: "non json", reply: reply{text: "1. Add Kubernetes"}},
		{name: "too many tips", reply: reply{text: tooMany}},
		{name: "wrong item type", reply: reply{text: `{"tips": [1, 2]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := newScriptedGenerator().on(kindExtract, sampleExtraction).on(kindResponsibilities, sampleVerdicts)
			gen.replies[kindTips] = []reply{tt.reply}

			analysis, err := newTestEngine(gen, nil).Analyze(context.Background(), sampleResume, sampleJob)
			require.NoError(t, err)

			assert.NotNil(t, analysis.Tips)
			assert.Empty(t, analysis.Tips)
			assert.Equal(t, baseline.ScoreTotal, analysis.ScoreTotal)
			assert.Equal(t, baseline.Breakdown, analysis.Breakdown)
			assert.Equal(t, OutcomeDegraded, analysis.Stages[6].Outcome)
		})
	}
}

func TestAnalyzeWithoutResponsibilitiesSkipsEvaluation(t *testing.T) {
	t.Parallel()

	gen := newScriptedGenerator().
		on(kindExtract, `{"requiredSkills": [], "preferredSkills": ["Docker"], "keywords": []}`).
		on(kindTips, `{"tips": []}`)

	analysis, err := newTestEngine(gen, nil).Analyze(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	assert.Empty(t, gen.callsOf(kindResponsibilities))
	assert.NotNil(t, analysis.Responsibilities)
	assert.Empty(t, analysis.Responsibilities)
	assert.Equal(t, OutcomeSkipped, analysis.Stages[2].Outcome)

	// Empty required contributes nothing; the single preferred skill is matched.
	assert.Equal(t, 10, analysis.Breakdown.Skills)
	assert.Equal(t, 0, analysis.Breakdown.RoleFit)
	assert.Equal(t, 0, analysis.Breakdown.Keywords)
	assert.Equal(t, 11, analysis.ScoreTotal)
}

func TestAnalyzeEmptyExtraction(t *testing.T) {
	t.Parallel()

	gen := newScriptedGenerator().on(kindExtract, `{}`).on(kindTips, `{}`)

	analysis, err := newTestEngine(gen, nil).Analyze(context.Background(), "", sampleJob)
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.ScoreTotal)
	assert.Equal(t, Breakdown{}, analysis.Breakdown)
	for _, list := range [][]string{
		analysis.Skills.Required, analysis.Skills.Preferred, analysis.Skills.Matched, analysis.Skills.Missing,
		analysis.Keywords.Important, analysis.Keywords.Matched, analysis.Keywords.Missing, analysis.Tips,
	} {
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestAnalyzeVerdictCountFollowsResponsibilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verdicts string
		want     []bool
	}{
		{name: "fewer verdicts", verdicts: `[{"supported": true}]`, want: []bool{true, false}},
		{
			name:     "more verdicts",
			verdicts: `[{"supported": true}, {"supported": true}, {"text": "extra", "supported": true}]`,
			want:     []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := newScriptedGenerator().
				on(kindExtract, sampleExtraction).
				on(kindResponsibilities, tt.verdicts).
				on(kindTips, sampleTips)

			analysis, err := newTestEngine(gen, nil).Analyze(context.Background(), sampleResume, sampleJob)
			require.NoError(t, err)

			require.Len(t, analysis.Responsibilities, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, analysis.Responsibilities[i].Supported)
			}
			assert.Equal(t, "Design APIs", analysis.Responsibilities[0].Text)
			assert.Equal(t, "Run on-call", analysis.Responsibilities[1].Text)
		})
	}
}

func TestAnalyzeLogsDegradedStages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	gen := newScriptedGenerator().
		on(kindExtract, sampleExtraction).
		fail(kindResponsibilities, ai.NewUpstreamError("gemini", 503, errors.New("unavailable"))).
		on(kindTips, sampleTips)

	_, err := New(gen, nil, DefaultOptions(), zap.New(core), nil).Analyze(context.Background(), sampleResume, sampleJob)
	require.NoError(t, err)

	warnings := logs.FilterMessage("stage degraded to default").All()
	require.Len(t, warnings, 1)
	fields := warnings[0].ContextMap()
	assert.Equal(t, StageEvaluateResponsibilities, fields["stage"])
	assert.Equal(t, "degrade", fields["policy"])
	assert.NotEmpty(t, fields["analysis_id"])

	completed := logs.FilterMessage("analysis completed").All()
	require.Len(t, completed, 1)
	assert.EqualValues(t, 38, completed[0].ContextMap()["score_total"])
}

func TestAnalyzeWithoutGenerator(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil, DefaultOptions(), nil, nil).Analyze(context.Background(), sampleResume, sampleJob)
	require.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestAnalyzeConcurrentRuns(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(sampleGenerator(), nil)

	const runs = 8
	results := make([]*Analysis, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = engine.Analyze(context.Background(), sampleResume, sampleJob)
		}()
	}
	wg.Wait()

	ids := map[string]struct{}{}
	for i := range runs {
		require.NoError(t, errs[i])
		assert.Equal(t, 50, results[i].ScoreTotal)
		ids[results[i].ID] = struct{}{}
	}
	assert.Len(t, ids, runs)
}
