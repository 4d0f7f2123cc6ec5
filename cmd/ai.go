package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/ai/gemini"
	"github.com/spigell/ats-scorer/internal/ai/openai"
	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/interview"
	"github.com/spigell/ats-scorer/internal/secrets"
	"github.com/spigell/ats-scorer/internal/taxonomy"
)

// newGenerator builds the configured text generator. A missing API key is reported
// as ai.ErrNotConfigured.
func newGenerator(ctx context.Context, cfg AIConfig, logger *zap.Logger) (ai.TextGenerator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ai.ErrNotConfigured, err)
		}
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger.With(zap.String("provider", "gemini")))
		if err != nil {
			return nil, err
		}
		return generator, nil
	case "openai":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ai.ErrNotConfigured, err)
		}
		generator, err := openai.NewGenerator(apiKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, logger.With(zap.String("provider", "openai")))
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func engineOptions(config *Config) ats.Options {
	opts := ats.DefaultOptions()
	opts.ExtractionTemperature = config.Analysis.ExtractionTemperature
	opts.EvaluationTemperature = config.Analysis.EvaluationTemperature
	opts.TipsTemperature = config.Analysis.TipsTemperature
	if config.AI.MaxLogLength > 0 {
		opts.MaxLogLength = config.AI.MaxLogLength
	}
	return opts
}

func newEngine(generator ai.TextGenerator, config *Config, logger *zap.Logger, observer ats.Observer) *ats.Engine {
	return ats.New(generator, taxonomy.Default(), engineOptions(config), logger, observer)
}

func newPredictor(generator ai.TextGenerator, config *Config, logger *zap.Logger) *interview.Predictor {
	return interview.NewPredictor(generator, config.Analysis.InterviewTemperature, logger, config.AI.MaxLogLength)
}
