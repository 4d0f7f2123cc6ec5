package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/utils"
)

const defaultMaxLogLength = 200

var fencePattern = regexp.MustCompile("(?s)^```[A-Za-z0-9_+.-]*[ \\t]*\\r?\\n(.*?)\\r?\\n?```\\s*$")

// StripCodeFences removes one Markdown code fence wrapping the whole text, with or
// without a language tag. Text that is not fenced is only trimmed.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// JSONClient turns raw generations into decoded JSON values. It does not validate
// shapes; callers own their schemas.
type JSONClient struct {
	generator TextGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewJSONClient wraps generator. A nil logger disables logging.
func NewJSONClient(generator TextGenerator, logger *zap.Logger, maxLogLength int) *JSONClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &JSONClient{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// GenerateJSON sends params to the generator and parses the fence-stripped reply.
// The result holds the generic encoding/json types (map[string]any, []any, float64...).
func (c *JSONClient) GenerateJSON(ctx context.Context, params GenerateParams) (any, error) {
	c.logger.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(params.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(params.Prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateText(ctx, params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	value, err := ParseJSON(raw)
	if err != nil {
		c.logger.Error("non-JSON model output", zap.String("raw", raw), zap.Error(err))
		return nil, err
	}

	return value, nil
}

// ParseJSON strips code fences and decodes the remainder.
func ParseJSON(raw string) (any, error) {
	cleaned := StripCodeFences(raw)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonJSONOutput, err)
	}

	return value, nil
}
