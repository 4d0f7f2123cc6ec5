package ats

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/ats-scorer/internal/textmatch"
)

var (
	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?(?:\(\d{2,4}\)[\s.-]?)?\d{3}[\s.-]?\d{3,4}[\s.-]?\d{0,4}`)
)

const (
	minResumeLength  = 1200
	maxResumeLength  = 25000
	minDistinctRunes = 15
)

// FormattingScore rates how well a resume's extracted text is structured, 0..10.
// It looks only at the text: contact details, section headings, length and
// character variety.
func FormattingScore(resumeText string) int {
	score := 0

	if emailPattern.MatchString(resumeText) {
		score += 2
	}
	if phonePattern.MatchString(resumeText) {
		score++
	}

	// "technical skills" and "work experience" contain the single-word headings.
	headings := textmatch.NewHaystack(resumeText)
	if headings.Contains("skills") {
		score += 2
	}
	if headings.ContainsAny([]string{"experience", "employment"}) {
		score += 2
	}

	length := utf8.RuneCountInString(strings.TrimSpace(resumeText))
	if length >= minResumeLength && length <= maxResumeLength {
		score += 2
	}

	if distinctNonSpaceRunes(resumeText) >= minDistinctRunes {
		score++
	}

	return clamp(score, 0, MaxFormattingScore)
}

func distinctNonSpaceRunes(text string) int {
	seen := make(map[rune]struct{})
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		seen[r] = struct{}{}
	}
	return len(seen)
}

func scoreFormatting(_ context.Context, st *runState) error {
	st.formatting = FormattingScore(st.resumeText)
	return nil
}
