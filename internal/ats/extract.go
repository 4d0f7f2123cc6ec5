package ats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/taxonomy"
)

func (e *Engine) extractRequirements(ctx context.Context, st *runState) error {
	prompt := buildExtractionPrompt(e.taxonomy, st.jobDescription)

	value, err := st.llm.GenerateJSON(ctx, ai.GenerateParams{
		Prompt:      prompt,
		Temperature: ai.Temperature(e.opts.ExtractionTemperature),
	})
	if err != nil {
		return fmt.Errorf("extract requirements: %w", err)
	}

	var raw Requirements
	if err := requirementsSchema.Decode(value, &raw); err != nil {
		return fmt.Errorf("extract requirements: %w", err)
	}

	st.requirements = sanitizeRequirements(raw, e.taxonomy)
	return nil
}

func buildExtractionPrompt(tax *taxonomy.Taxonomy, jobDescription string) string {
	names := tax.Names()
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "- " + name
	}

	return renderPrompt(extractPromptTemplate, map[string]string{
		"MAX_REQUIRED":         strconv.Itoa(MaxRequiredSkills),
		"MAX_PREFERRED":        strconv.Itoa(MaxPreferredSkills),
		"MAX_RESPONSIBILITIES": strconv.Itoa(MaxResponsibilities),
		"MAX_KEYWORDS":         strconv.Itoa(MaxKeywords),
		"TAXONOMY":             strings.Join(lines, "\n"),
		"JOB_DESCRIPTION":      jobDescription,
	})
}

// sanitizeRequirements keeps only exact taxonomy names for skills, removes from
// preferred anything already required, drops blank or repeated phrases and applies
// the caps.
func sanitizeRequirements(raw Requirements, tax *taxonomy.Taxonomy) Requirements {
	required := uniqueWhere(raw.RequiredSkills, MaxRequiredSkills, func(s string) bool {
		return tax.Contains(s)
	})

	requiredSet := make(map[string]struct{}, len(required))
	for _, s := range required {
		requiredSet[s] = struct{}{}
	}

	preferred := uniqueWhere(raw.PreferredSkills, MaxPreferredSkills, func(s string) bool {
		_, isRequired := requiredSet[s]
		return tax.Contains(s) && !isRequired
	})

	return Requirements{
		RequiredSkills:   required,
		PreferredSkills:  preferred,
		Responsibilities: nonBlank(raw.Responsibilities, MaxResponsibilities),
		Keywords:         nonBlank(raw.Keywords, MaxKeywords),
	}
}

// uniqueWhere returns the first limit distinct items accepted by keep, in input order.
func uniqueWhere(items []string, limit int, keep func(string) bool) []string {
	out := make([]string, 0, min(len(items), limit))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if _, dup := seen[item]; dup || !keep(item) {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// nonBlank trims items and keeps the first limit distinct non-empty ones.
func nonBlank(items []string, limit int) []string {
	trimmed := make([]string, len(items))
	for i, item := range items {
		trimmed[i] = strings.TrimSpace(item)
	}
	return uniqueWhere(trimmed, limit, func(s string) bool { return s != "" })
}
