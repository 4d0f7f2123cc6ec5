package ats

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/spigell/ats-scorer/internal/ai"
)

const (
	kindExtract          = "extract"
	kindResponsibilities = "responsibilities"
	kindTips             = "tips"
)

type reply struct {
	text string
	err  error
}

// scriptedGenerator answers each prompt kind from its own queue. When a queue has a
// single entry left it is reused, so concurrent analyses can share one script.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies map[string][]reply
	calls   []recordedCall
}

type recordedCall struct {
	kind   string
	params ai.GenerateParams
}

func newScriptedGenerator() *scriptedGenerator {
	return &scriptedGenerator{replies: map[string][]reply{}}
}

func (g *scriptedGenerator) on(kind, text string) *scriptedGenerator {
	g.replies[kind] = append(g.replies[kind], reply{text: text})
	return g
}

func (g *scriptedGenerator) fail(kind string, err error) *scriptedGenerator {
	g.replies[kind] = append(g.replies[kind], reply{err: err})
	return g
}

func (g *scriptedGenerator) GenerateText(_ context.Context, params ai.GenerateParams) (string, error) {
	kind := promptKind(params.Prompt)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, recordedCall{kind: kind, params: params})

	queue := g.replies[kind]
	if len(queue) == 0 {
		return "", errors.New("unexpected " + kind + " call")
	}
	next := queue[0]
	if len(queue) > 1 {
		g.replies[kind] = queue[1:]
	}
	return next.text, next.err
}

func (g *scriptedGenerator) callsOf(kind string) []recordedCall {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []recordedCall
	for _, c := range g.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func promptKind(prompt string) string {
	switch {
	case strings.HasPrefix(prompt, "You are an ATS analyst"):
		return kindExtract
	case strings.HasPrefix(prompt, "You are an ATS resume reviewer"):
		return kindResponsibilities
	case strings.HasPrefix(prompt, "You are a resume coach"):
		return kindTips
	default:
		return "unknown"
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	stages   []StageReport
	analyses []*Analysis
}

func (o *recordingObserver) ObserveStage(report StageReport) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, report)
}

func (o *recordingObserver) ObserveAnalysis(analysis *Analysis) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.analyses = append(o.analyses, analysis)
}
