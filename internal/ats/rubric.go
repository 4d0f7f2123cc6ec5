package ats

import (
	"context"
	"math"
)

// Rubric weights. Skills split 40 required / 10 preferred.
const (
	requiredSkillsWeight  = 40.0
	preferredSkillsWeight = 10.0
	roleFitWeight         = 25.0
	keywordsWeight        = 15.0
)

// RubricInput holds the counts the rubric is computed from.
type RubricInput struct {
	Required         int
	MatchedRequired  int
	Preferred        int
	MatchedPreferred int
	Responsibilities int
	Supported        int
	Keywords         int
	MatchedKeywords  int
	FormattingScore  int
}

// Score composes the breakdown and the 0..100 total. Empty denominators contribute 0.
func Score(in RubricInput) (Breakdown, int) {
	skills := requiredSkillsWeight*ratio(in.MatchedRequired, in.Required) +
		preferredSkillsWeight*ratio(in.MatchedPreferred, in.Preferred)
	roleFit := roleFitWeight * ratio(in.Supported, in.Responsibilities)
	keywords := keywordsWeight * ratio(in.MatchedKeywords, in.Keywords)
	formatting := float64(in.FormattingScore)

	total := clamp(int(math.Round(skills+roleFit+keywords+formatting)), 0, MaxTotalScore)

	breakdown := Breakdown{
		Skills:     clamp(int(math.Round(skills)), 0, MaxSkillsScore),
		RoleFit:    clamp(int(math.Round(roleFit)), 0, MaxRoleFitScore),
		Keywords:   clamp(int(math.Round(keywords)), 0, MaxKeywordsScore),
		Formatting: clamp(in.FormattingScore, 0, MaxFormattingScore),
	}

	return breakdown, total
}

func composeRubric(_ context.Context, st *runState) error {
	supported := 0
	for _, v := range st.verdicts {
		if v.Supported {
			supported++
		}
	}

	st.breakdown, st.total = Score(RubricInput{
		Required:         len(st.requirements.RequiredSkills),
		MatchedRequired:  len(st.matchedRequired),
		Preferred:        len(st.requirements.PreferredSkills),
		MatchedPreferred: len(st.matchedPreferred),
		Responsibilities: len(st.verdicts),
		Supported:        supported,
		Keywords:         len(st.keywords.Important),
		MatchedKeywords:  len(st.keywords.Matched),
		FormattingScore:  st.formatting,
	})
	return nil
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
