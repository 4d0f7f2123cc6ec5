package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()

	for _, env := range envBindings {
		t.Setenv(env, "")
	}

	v := viper.New()
	require.NoError(t, setupViper(v))
	return v
}

func TestDecodeConfigDefaults(t *testing.T) {
	v := newTestViper(t)

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "gemini", config.AI.Provider)
	assert.Equal(t, 200, config.AI.MaxLogLength)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", config.AI.OpenAI.Model)
	assert.InDelta(t, 0.2, config.Analysis.ExtractionTemperature, 1e-6)
	assert.InDelta(t, 0.2, config.Analysis.EvaluationTemperature, 1e-6)
	assert.InDelta(t, 0.3, config.Analysis.TipsTemperature, 1e-6)
	assert.Zero(t, config.Analysis.Timeout)
	assert.Equal(t, 3001, config.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, config.Server.CORSOrigins)
	assert.Equal(t, 30, config.Server.RateLimitPerMinute)
	assert.EqualValues(t, 5<<20, config.Server.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)
}

func TestDecodeConfigEnvironment(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGIN", "https://a.example,https://b.example")

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "openai", config.AI.Provider)
	assert.Equal(t, "gpt-4.1-mini", config.AI.OpenAI.Model)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.Server.CORSOrigins)
}

func TestDecodeConfigFile(t *testing.T) {
	v := newTestViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
ai:
  provider: openai
  openai:
    base-url: http://localhost:11434/v1
analysis:
  tips-temperature: 0.7
  timeout: 45s
server:
  rate-limit-per-minute: 0
`)))

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", config.AI.OpenAI.BaseURL)
	assert.InDelta(t, 0.7, config.Analysis.TipsTemperature, 1e-6)
	assert.Equal(t, 45*time.Second, config.Analysis.Timeout)
	assert.Zero(t, config.Server.RateLimitPerMinute)
}

func TestDecodeConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		field string
	}{
		{name: "unknown provider", key: "ai.provider", value: "claude", field: "Provider"},
		{name: "negative temperature", key: "analysis.tips-temperature", value: -0.1, field: "TipsTemperature"},
		{name: "temperature too high", key: "analysis.extraction-temperature", value: 3, field: "ExtractionTemperature"},
		{name: "port out of range", key: "server.port", value: 70000, field: "Port"},
		{name: "zero upload limit", key: "server.max-upload-bytes", value: 0, field: "MaxUploadBytes"},
		{name: "negative rate limit", key: "server.rate-limit-per-minute", value: -1, field: "RateLimitPerMinute"},
		{name: "bad base url", key: "ai.openai.base-url", value: "not a url", field: "BaseURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper(t)
			v.Set(tt.key, tt.value)

			_, err := decodeConfig(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
