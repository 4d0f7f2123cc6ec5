// Package taxonomy holds the fixed skills vocabulary that bounds requirement extraction.
package taxonomy

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Taxonomy is an immutable index over a skills catalog. It is safe for concurrent reads.
type Taxonomy struct {
	skills  []Skill
	names   []string
	aliases map[string][]string
	byName  map[string]Skill
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the process-wide taxonomy built from the embedded catalog.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		tax, err := New(catalog)
		if err != nil {
			panic(fmt.Sprintf("building default taxonomy: %v", err))
		}
		defaultTax = tax
	})

	return defaultTax
}

// New builds a taxonomy from the provided skills. Names must be non-empty and unique.
func New(skills []Skill) (*Taxonomy, error) {
	t := &Taxonomy{
		skills:  make([]Skill, 0, len(skills)),
		names:   make([]string, 0, len(skills)),
		aliases: make(map[string][]string, len(skills)),
		byName:  make(map[string]Skill, len(skills)),
	}

	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			return nil, fmt.Errorf("skill with empty name in category %q", skill.Category)
		}
		if _, ok := t.byName[name]; ok {
			return nil, fmt.Errorf("duplicate skill name %q", name)
		}

		aliases := make([]string, 0, len(skill.Aliases)+1)
		aliases = append(aliases, name)
		for _, alias := range skill.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}

		stored := Skill{Name: name, Category: skill.Category, Aliases: slices.Clone(skill.Aliases)}
		t.skills = append(t.skills, stored)
		t.names = append(t.names, name)
		t.aliases[name] = aliases
		t.byName[name] = stored
	}

	return t, nil
}

// Names returns the canonical names in catalog order. The slice is a copy.
func (t *Taxonomy) Names() []string {
	return slices.Clone(t.names)
}

// Len returns the number of skills.
func (t *Taxonomy) Len() int {
	return len(t.names)
}

// Contains reports whether name is an exact canonical name.
func (t *Taxonomy) Contains(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// AliasesOf returns the searchable surface forms of name, the name itself first.
// Unknown names default to a single-element list holding the name.
func (t *Taxonomy) AliasesOf(name string) []string {
	if aliases, ok := t.aliases[name]; ok {
		return slices.Clone(aliases)
	}
	return []string{name}
}

// Lookup returns the skill registered under name.
func (t *Taxonomy) Lookup(name string) (Skill, bool) {
	skill, ok := t.byName[name]
	if !ok {
		return Skill{}, false
	}
	skill.Aliases = slices.Clone(skill.Aliases)
	return skill, true
}

// ByCategory returns the skills of a category in catalog order.
func (t *Taxonomy) ByCategory(category Category) []Skill {
	out := make([]Skill, 0)
	for _, skill := range t.skills {
		if skill.Category == category {
			skill.Aliases = slices.Clone(skill.Aliases)
			out = append(out, skill)
		}
	}
	return out
}

// ParseCategory resolves a category by case-insensitive name.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}
