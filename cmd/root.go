package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ats-scorer"
)

type Config struct {
	AI       AIConfig       `mapstructure:"ai"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Server   ServerConfig   `mapstructure:"server"`
}

type AIConfig struct {
	Provider     string       `mapstructure:"provider" validate:"oneof=gemini openai"`
	MaxLogLength int          `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini       GeminiConfig `mapstructure:"gemini"`
	OpenAI       OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
}

type AnalysisConfig struct {
	ExtractionTemperature float32       `mapstructure:"extraction-temperature" validate:"gte=0,lte=2"`
	EvaluationTemperature float32       `mapstructure:"evaluation-temperature" validate:"gte=0,lte=2"`
	TipsTemperature       float32       `mapstructure:"tips-temperature" validate:"gte=0,lte=2"`
	InterviewTemperature  float32       `mapstructure:"interview-temperature" validate:"gte=0,lte=2"`
	Timeout               time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Port               int           `mapstructure:"port" validate:"min=1,max=65535"`
	CORSOrigins        []string      `mapstructure:"cors-origins"`
	RateLimitPerMinute int           `mapstructure:"rate-limit-per-minute" validate:"gte=0"`
	MaxUploadBytes     int64         `mapstructure:"max-upload-bytes" validate:"min=1"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown-timeout" validate:"gte=0"`
}

var envBindings = map[string]string{
	"ai.provider":            "LLM_PROVIDER",
	"ai.gemini.api-key":      "GEMINI_API_KEY",
	"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	"ai.gemini.model":        "GEMINI_MODEL",
	"ai.openai.api-key":      "OPENAI_API_KEY",
	"ai.openai.api-key-file": "OPENAI_API_KEY_FILE",
	"ai.openai.model":        "OPENAI_MODEL",
	"ai.openai.base-url":     "OPENAI_BASE_URL",
	"server.port":            "PORT",
	"server.cors-origins":    "CORS_ORIGIN",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-scorer scores how well a resume matches a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Variables already present in the environment win over .env.
	_ = godotenv.Load()

	if err := setupViper(viper.GetViper()); err != nil {
		log.Fatal(err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config file must parse; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func setupViper(v *viper.Viper) error {
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	v.SetDefault("ai.openai.model", "gpt-4o-mini")
	v.SetDefault("analysis.extraction-temperature", 0.2)
	v.SetDefault("analysis.evaluation-temperature", 0.2)
	v.SetDefault("analysis.tips-temperature", 0.3)
	v.SetDefault("analysis.interview-temperature", 0.3)
	v.SetDefault("analysis.timeout", "0s")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors-origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate-limit-per-minute", 30)
	v.SetDefault("server.max-upload-bytes", 5<<20)
	v.SetDefault("server.shutdown-timeout", "10s")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}

	return nil
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
