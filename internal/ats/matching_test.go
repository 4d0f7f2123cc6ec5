package ats

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-scorer/internal/taxonomy"
	"github.com/spigell/ats-scorer/internal/textmatch"
)

func runMatching(t *testing.T, resume string, reqs Requirements) *runState {
	t.Helper()

	e := New(nil, taxonomy.Default(), DefaultOptions(), nil, nil)
	st := &runState{resumeText: resume, haystack: textmatch.NewHaystack(resume), requirements: reqs}

	require.NoError(t, e.matchSkills(context.Background(), st))
	require.NoError(t, matchKeywords(context.Background(), st))
	return st
}

func TestMatchSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		resume    string
		required  []string
		preferred []string
		matched   []string
		missing   []string
	}{
		{
			name:     "containerization example",
			resume:   "Experienced with MySQL and containerization via Docker",
			required: []string{"MySQL", "Docker"},
			matched:  []string{"Docker", "MySQL"},
			missing:  []string{},
		},
		{
			name:     "single letter skill needs a whole word",
			resume:   "Director of Engineering",
			required: []string{"R"},
			matched:  []string{},
			missing:  []string{"R"},
		},
		{
			name:     "single letter skill as a token",
			resume:   "Statistics in R, Python and SQL",
			required: []string{"R"},
			matched:  []string{"R"},
			missing:  []string{},
		},
		{
			name:      "aliases",
			resume:    "Golang services on k8s",
			required:  []string{"Go"},
			preferred: []string{"Kubernetes"},
			matched:   []string{"Go", "Kubernetes"},
			missing:   []string{},
		},
		{
			name:      "punctuation aliases",
			resume:    "Modern c++ and c# on .net",
			required:  []string{"C++", "C#"},
			preferred: []string{".NET", "Node.js"},
			matched:   []string{".NET", "C#", "C++"},
			missing:   []string{"Node.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := runMatching(t, tt.resume, Requirements{RequiredSkills: tt.required, PreferredSkills: tt.preferred})
			assert.Equal(t, tt.matched, st.skills.Matched)
			assert.Equal(t, tt.missing, st.skills.Missing)

			// matched and missing partition required and preferred.
			union := textmatch.SortedUnique(append(slices.Clone(st.skills.Matched), st.skills.Missing...))
			all := textmatch.SortedUnique(append(slices.Clone(tt.required), tt.preferred...))
			assert.Equal(t, all, union)
			for _, m := range st.skills.Matched {
				assert.NotContains(t, st.skills.Missing, m)
			}
		})
	}
}

func TestMatchKeywords(t *testing.T) {
	t.Parallel()

	st := runMatching(t, "Going further with CI/CD, go and on-call rotations", Requirements{
		Keywords: []string{"Go", "CI/CD", "on-call", "SLO"},
	})

	assert.Equal(t, KeywordsReport{
		Important: []string{"CI/CD", "Go", "on-call", "SLO"},
		Matched:   []string{"CI/CD", "Go", "on-call"},
		Missing:   []string{"SLO"},
	}, st.keywords)

	st = runMatching(t, "Going places", Requirements{Keywords: []string{"Go"}})
	assert.Empty(t, st.keywords.Matched)
	assert.Equal(t, []string{"Go"}, st.keywords.Missing)
}
