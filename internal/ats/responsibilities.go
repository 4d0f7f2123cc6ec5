package ats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/utils"
)

type verdictDoc struct {
	Text      *string `json:"text"`
	Supported bool    `json:"supported"`
	Evidence  *string `json:"evidence"`
}

func (e *Engine) evaluateResponsibilities(ctx context.Context, st *runState) error {
	responsibilities := st.requirements.Responsibilities
	if len(responsibilities) == 0 {
		st.verdicts = []ResponsibilityVerdict{}
		return errSkipped
	}

	value, err := st.llm.GenerateJSON(ctx, ai.GenerateParams{
		Prompt:      buildResponsibilitiesPrompt(responsibilities, st.resumeText),
		Temperature: ai.Temperature(e.opts.EvaluationTemperature),
	})
	if err != nil {
		return fmt.Errorf("evaluate responsibilities: %w", err)
	}

	var docs []verdictDoc
	if err := verdictsSchema.Decode(value, &docs); err != nil {
		return fmt.Errorf("evaluate responsibilities: %w", err)
	}

	st.verdicts = zipVerdicts(responsibilities, docs)
	return nil
}

func buildResponsibilitiesPrompt(responsibilities []string, resumeText string) string {
	lines := make([]string, len(responsibilities))
	for i, r := range responsibilities {
		lines[i] = strconv.Itoa(i+1) + ". " + utils.SingleLine(r)
	}

	return renderPrompt(responsibilitiesPromptTemplate, map[string]string{
		"RESPONSIBILITIES": strings.Join(lines, "\n"),
		"RESUME":           resumeText,
	})
}

// zipVerdicts pairs model verdicts with responsibilities by position. Extra verdicts
// are dropped and missing ones become unsupported, so the result always has one
// verdict per responsibility in the same order.
func zipVerdicts(responsibilities []string, docs []verdictDoc) []ResponsibilityVerdict {
	verdicts := make([]ResponsibilityVerdict, len(responsibilities))
	for i, original := range responsibilities {
		if i >= len(docs) {
			verdicts[i] = ResponsibilityVerdict{Text: original}
			continue
		}

		doc := docs[i]
		text := original
		if doc.Text != nil && strings.TrimSpace(*doc.Text) != "" {
			text = strings.TrimSpace(*doc.Text)
		}

		verdicts[i] = ResponsibilityVerdict{
			Text:      text,
			Supported: doc.Supported,
			Evidence:  cleanEvidence(doc.Evidence),
		}
	}
	return verdicts
}

func cleanEvidence(evidence *string) *string {
	if evidence == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*evidence)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func unsupportedFallback(st *runState) {
	responsibilities := st.requirements.Responsibilities
	st.verdicts = make([]ResponsibilityVerdict, len(responsibilities))
	for i, r := range responsibilities {
		st.verdicts[i] = ResponsibilityVerdict{Text: r}
	}
}
