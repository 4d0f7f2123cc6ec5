package ats

// Analysis is the result of one scoring run.
type Analysis struct {
	ID               string                  `json:"analysisId,omitempty"`
	ScoreTotal       int                     `json:"scoreTotal"`
	Breakdown        Breakdown               `json:"breakdown"`
	Skills           SkillsReport            `json:"skills"`
	Responsibilities []ResponsibilityVerdict `json:"responsibilities"`
	Keywords         KeywordsReport          `json:"keywords"`
	Tips             []string                `json:"tips"`
	Stages           []StageReport           `json:"-"`
}

// Breakdown holds the rubric components. Each is bounded by its ceiling.
type Breakdown struct {
	Skills     int `json:"skills"`
	RoleFit    int `json:"roleFit"`
	Keywords   int `json:"keywords"`
	Formatting int `json:"formatting"`
}

// Rubric ceilings.
const (
	MaxSkillsScore     = 50
	MaxRoleFitScore    = 25
	MaxKeywordsScore   = 15
	MaxFormattingScore = 10
	MaxTotalScore      = 100
)

// SkillsReport lists taxonomy skills. All lists are deduplicated and sorted.
type SkillsReport struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
}

// KeywordsReport lists free-text keywords. All lists are deduplicated and sorted.
type KeywordsReport struct {
	Important []string `json:"important"`
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
}

// ResponsibilityVerdict says whether the resume shows evidence for one responsibility.
type ResponsibilityVerdict struct {
	Text      string  `json:"text"`
	Supported bool    `json:"supported"`
	Evidence  *string `json:"evidence"`
}

// Requirements is the validated output of requirement extraction.
type Requirements struct {
	RequiredSkills   []string `json:"requiredSkills"`
	PreferredSkills  []string `json:"preferredSkills"`
	Responsibilities []string `json:"responsibilities"`
	Keywords         []string `json:"keywords"`
}

// Extraction caps.
const (
	MaxRequiredSkills   = 25
	MaxPreferredSkills  = 15
	MaxResponsibilities = 12
	MaxKeywords         = 20
	MaxTips             = 10
)
