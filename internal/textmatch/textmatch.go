// Package textmatch detects skills and keywords in free text.
//
// Aliases made only of letters, digits and spaces are matched as whole tokens on
// normalized text, so "R" never matches inside "Director". Aliases carrying
// punctuation ("C++", "C#", ".NET", "CI/CD") are matched as raw case-insensitive
// substrings because normalization would erase the punctuation that identifies them.
package textmatch

import (
	"slices"
	"strings"
)

// Normalize lowercases text, collapses every run of characters outside [a-z0-9]
// into a single space and trims the result.
func Normalize(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))

	pendingSpace := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if isWordByte(c) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteByte(c)
			continue
		}
		pendingSpace = true
	}

	return b.String()
}

// IsWordAlias reports whether alias contains only ASCII letters, digits and spaces.
func IsWordAlias(alias string) bool {
	if alias == "" {
		return false
	}
	for i := 0; i < len(alias); i++ {
		c := alias[i]
		if c == ' ' || isWordByte(c) || ('A' <= c && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

// ContainsAlias applies the matching rule for one alias. normalizedHaystack must be
// Normalize(rawHaystack).
func ContainsAlias(normalizedHaystack, rawHaystack, alias string) bool {
	if IsWordAlias(alias) {
		needle := Normalize(alias)
		if needle == "" {
			return false
		}
		return strings.Contains(" "+normalizedHaystack+" ", " "+needle+" ")
	}

	if strings.TrimSpace(alias) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(rawHaystack), strings.ToLower(alias))
}

// AliasFunc resolves the surface forms of a candidate name.
type AliasFunc func(name string) []string

// Haystack caches the raw and normalized forms of a text so that many
// candidates can be checked without re-normalizing.
type Haystack struct {
	lowerRaw   string
	normalized string
	padded     string
}

// NewHaystack prepares text for repeated lookups.
func NewHaystack(text string) *Haystack {
	normalized := Normalize(text)
	return &Haystack{
		lowerRaw:   strings.ToLower(text),
		normalized: normalized,
		padded:     " " + normalized + " ",
	}
}

// Normalized returns the normalized text.
func (h *Haystack) Normalized() string {
	return h.normalized
}

// Contains reports whether alias occurs in the text.
func (h *Haystack) Contains(alias string) bool {
	if IsWordAlias(alias) {
		needle := Normalize(alias)
		if needle == "" {
			return false
		}
		return strings.Contains(h.padded, " "+needle+" ")
	}

	if strings.TrimSpace(alias) == "" {
		return false
	}
	return strings.Contains(h.lowerRaw, strings.ToLower(alias))
}

// ContainsAny reports whether any of aliases occurs in the text.
func (h *Haystack) ContainsAny(aliases []string) bool {
	for _, alias := range aliases {
		if h.Contains(alias) {
			return true
		}
	}
	return false
}

// Detect returns the sorted unique subset of candidates with at least one alias in
// the text. A nil aliases func treats every candidate as its own single alias.
func (h *Haystack) Detect(candidates []string, aliases AliasFunc) []string {
	matched := make([]string, 0, len(candidates))
	for _, name := range candidates {
		forms := []string{name}
		if aliases != nil {
			forms = aliases(name)
		}
		if h.ContainsAny(forms) {
			matched = append(matched, name)
		}
	}
	return SortedUnique(matched)
}

// Detect is a one-shot helper over NewHaystack(text).Detect.
func Detect(text string, candidates []string, aliases AliasFunc) []string {
	return NewHaystack(text).Detect(candidates, aliases)
}

// SortedUnique returns a deduplicated copy of items ordered case-insensitively,
// ties broken by byte order. The result is never nil.
func SortedUnique(items []string) []string {
	out := append(make([]string, 0, len(items)), items...)
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}

// Compare orders strings case-insensitively with a byte-order tiebreak.
func Compare(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Difference returns the sorted unique items of all that are not in exclude.
func Difference(all, exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, item := range exclude {
		skip[item] = struct{}{}
	}

	out := make([]string, 0, len(all))
	for _, item := range all {
		if _, ok := skip[item]; !ok {
			out = append(out, item)
		}
	}
	return SortedUnique(out)
}

func isWordByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}
