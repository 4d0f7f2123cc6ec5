package ats

import (
	_ "embed"
	"strings"

	"github.com/spigell/ats-scorer/internal/schemas"
)

var (
	//go:embed prompts/extract.md
	extractPromptTemplate string
	//go:embed prompts/responsibilities.md
	responsibilitiesPromptTemplate string
	//go:embed prompts/tips.md
	tipsPromptTemplate string

	//go:embed schemas/requirements.json
	requirementsSchemaJSON string
	//go:embed schemas/verdicts.json
	verdictsSchemaJSON string
	//go:embed schemas/tips.json
	tipsSchemaJSON string
)

var (
	requirementsSchema = schemas.MustCompile("requirements", requirementsSchemaJSON)
	verdictsSchema     = schemas.MustCompile("responsibility verdicts", verdictsSchemaJSON)
	tipsSchema         = schemas.MustCompile("tips", tipsSchemaJSON)
)

// renderPrompt substitutes {{KEY}} placeholders in a single pass, so values that
// happen to contain placeholders are left alone.
func renderPrompt(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
