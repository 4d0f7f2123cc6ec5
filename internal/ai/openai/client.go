package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o-mini"
)

type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Generator implements ai.TextGenerator on top of the OpenAI chat completions API.
type Generator struct {
	completions chatCompleter
	modelName   string
	logger      *zap.Logger
}

// NewGenerator creates a Generator. baseURL is optional and allows OpenAI-compatible gateways.
func NewGenerator(apiKey, model, baseURL string, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Failures surface to the caller once.
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return newGenerator(&client.Chat.Completions, model, logger), nil
}

func newGenerator(completions chatCompleter, model string, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{completions: completions, modelName: model, logger: logger}
}

// GenerateText sends the prompt as a single user message.
func (g *Generator) GenerateText(ctx context.Context, params ai.GenerateParams) (string, error) {
	if g == nil || g.completions == nil {
		return "", errors.New("openai generator is not initialized")
	}

	prompt := strings.TrimSpace(params.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	body := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(g.modelName),
	}
	if params.Temperature != nil {
		body.Temperature = openai.Float(float64(*params.Temperature))
	}

	completion, err := g.completions.New(ctx, body)
	if err != nil {
		upstream := ai.NewUpstreamError(providerName, statusOf(err), fmt.Errorf("chat completion: %w", err))
		g.logger.Debug("openai chat completion failed",
			zap.String("kind", string(upstream.Kind)),
			zap.Int("status", upstream.StatusCode),
			zap.Error(err),
		)
		return "", upstream
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", ai.NewUpstreamError(providerName, 0, errors.New("no response from openai"))
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", ai.NewUpstreamError(providerName, 0, errors.New("openai returned empty content"))
	}

	return content, nil
}

// Provider implements ai.Describer.
func (g *Generator) Provider() string {
	return providerName
}

// Model implements ai.Describer.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func statusOf(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.StatusCode
	}
	return 0
}
