// Package ai defines the text-generation capability consumed by the scoring engine
// and a thin JSON layer on top of it.
package ai

import (
	"context"
)

// GenerateParams is a single prompt sent to a model. A nil Temperature leaves the
// provider default in place.
type GenerateParams struct {
	Prompt      string
	Temperature *float32
}

// Temperature returns a pointer suitable for GenerateParams.Temperature.
func Temperature(t float32) *float32 {
	return &t
}

// TextGenerator produces raw model text for a prompt. Implementations must not retry
// and must wrap provider failures in *UpstreamError.
type TextGenerator interface {
	GenerateText(ctx context.Context, params GenerateParams) (string, error)
}

// Describer is implemented by generators that can name their provider and model for logs.
type Describer interface {
	Provider() string
	Model() string
}

// GeneratorFunc adapts a function to TextGenerator.
type GeneratorFunc func(ctx context.Context, params GenerateParams) (string, error)

func (f GeneratorFunc) GenerateText(ctx context.Context, params GenerateParams) (string, error) {
	return f(ctx, params)
}
