package ats

import (
	"context"

	"github.com/spigell/ats-scorer/internal/textmatch"
)

func (e *Engine) matchSkills(_ context.Context, st *runState) error {
	required := st.requirements.RequiredSkills
	preferred := st.requirements.PreferredSkills

	// Required and preferred are detected separately; the rubric weights them differently.
	st.matchedRequired = st.haystack.Detect(required, e.taxonomy.AliasesOf)
	st.matchedPreferred = st.haystack.Detect(preferred, e.taxonomy.AliasesOf)

	all := append(append([]string{}, required...), preferred...)
	matched := textmatch.SortedUnique(append(append([]string{}, st.matchedRequired...), st.matchedPreferred...))

	st.skills = SkillsReport{
		Required:  textmatch.SortedUnique(required),
		Preferred: textmatch.SortedUnique(preferred),
		Matched:   matched,
		Missing:   textmatch.Difference(all, matched),
	}
	return nil
}

func matchKeywords(_ context.Context, st *runState) error {
	keywords := st.requirements.Keywords
	matched := st.haystack.Detect(keywords, nil)

	st.keywords = KeywordsReport{
		Important: textmatch.SortedUnique(keywords),
		Matched:   matched,
		Missing:   textmatch.Difference(keywords, matched),
	}
	return nil
}
