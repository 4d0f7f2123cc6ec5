package ats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/textmatch"
	"github.com/spigell/ats-scorer/internal/utils"
)

type tipsDoc struct {
	Tips []string `json:"tips"`
}

func (e *Engine) generateTips(ctx context.Context, st *runState) error {
	value, err := st.llm.GenerateJSON(ctx, ai.GenerateParams{
		Prompt:      buildTipsPrompt(st),
		Temperature: ai.Temperature(e.opts.TipsTemperature),
	})
	if err != nil {
		return fmt.Errorf("generate tips: %w", err)
	}

	var doc tipsDoc
	if err := tipsSchema.Decode(value, &doc); err != nil {
		return fmt.Errorf("generate tips: %w", err)
	}

	tips := make([]string, 0, len(doc.Tips))
	for _, tip := range doc.Tips {
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	st.tips = tips
	return nil
}

func buildTipsPrompt(st *runState) string {
	missingRequired := textmatch.Difference(st.requirements.RequiredSkills, st.skills.Matched)
	missingOther := textmatch.Difference(st.skills.Missing, missingRequired)

	unsupported := make([]string, 0, len(st.verdicts))
	for _, v := range st.verdicts {
		if !v.Supported {
			unsupported = append(unsupported, v.Text)
		}
	}

	return renderPrompt(tipsPromptTemplate, map[string]string{
		"MAX_TIPS":                     strconv.Itoa(MaxTips),
		"MISSING_REQUIRED":             utils.JoinOr(missingRequired, ", ", "None"),
		"MISSING_OTHER":                utils.JoinOr(missingOther, ", ", "None"),
		"UNSUPPORTED_RESPONSIBILITIES": utils.JoinOr(unsupported, " | ", "None"),
		"RESUME":                       st.resumeText,
		"JOB_DESCRIPTION":              st.jobDescription,
	})
}

func noTipsFallback(st *runState) {
	st.tips = []string{}
}
