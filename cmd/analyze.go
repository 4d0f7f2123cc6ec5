package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/logger"
)

const defaultConcurrency = 4

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against one or more job descriptions",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (PDF, HTML or plain text)")
	analyzeCmd.Flags().StringArray("job", nil, "job description file, may be repeated")
	analyzeCmd.Flags().IntP("concurrency", "c", defaultConcurrency, "how many analyses run at once")
	analyzeCmd.Flags().Duration("timeout", 0, "time limit for each analysis (default is analysis.timeout from config)")

	analyzeCmd.MarkFlagRequired("resume")
}

// analyzer is the part of the engine the batch runner needs.
type analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*ats.Analysis, error)
}

type jobInput struct {
	Name string
	Text string
}

type batchResult struct {
	Job      string        `json:"job"`
	Analysis *ats.Analysis `json:"analysis,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func analyze(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jobFiles, _ := cmd.Flags().GetStringArray("job")
	if len(jobFiles) == 0 {
		jobFile, err := askJobFile()
		if err != nil {
			logger.Fatal("job description file is required", zap.Error(err),
				zap.String("hint", "pass --job FILE"),
			)
		}
		jobFiles = []string{jobFile}
	}

	extractor := document.NewExtractor(logger)

	resumeFile, _ := cmd.Flags().GetString("resume")
	resume, err := readDocument(ctx, extractor, resumeFile)
	if err != nil {
		logger.Fatal("reading resume", zap.String("file", resumeFile), zap.Error(err))
	}

	jobs := make([]jobInput, 0, len(jobFiles))
	for _, file := range jobFiles {
		text, err := readDocument(ctx, extractor, file)
		if err != nil {
			logger.Fatal("reading job description", zap.String("file", file), zap.Error(err))
		}
		jobs = append(jobs, jobInput{Name: file, Text: text})
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating a text generator", zap.Error(err))
	}
	engine := newEngine(generator, config, logger, nil)

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = config.Analysis.Timeout
	}

	logger.Info("starting analysis",
		zap.String("version", version),
		zap.Int("jobs", len(jobs)),
		zap.Int("concurrency", concurrency),
	)

	results := runBatch(ctx, engine, resume, jobs, concurrency, timeout)

	if len(results) == 1 {
		if results[0].Error != "" {
			logger.Fatal("analysis failed", zap.String("job", results[0].Job), zap.String("error", results[0].Error))
		}
		if err := writeJSON(cmd.OutOrStdout(), results[0].Analysis); err != nil {
			logger.Fatal("writing result", zap.Error(err))
		}
		return
	}

	if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}
}

// runBatch analyzes the resume against every job. A failed analysis is recorded in
// its result and does not stop the others. Results keep the order of jobs.
func runBatch(ctx context.Context, engine analyzer, resume string, jobs []jobInput, concurrency int, timeout time.Duration) []batchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]batchResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			runCtx, cancel := withOptionalTimeout(ctx, timeout)
			defer cancel()

			results[i].Job = job.Name
			analysis, err := engine.Analyze(runCtx, resume, job.Text)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Analysis = analysis
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func readDocument(ctx context.Context, extractor *document.Extractor, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	doc, err := extractor.Extract(ctx, data)
	if err != nil {
		return "", err
	}

	return doc.Text, nil
}

var errNotInteractive = errors.New("stdin is not a terminal")

func askJobFile() (string, error) {
	if !isTerminal(os.Stdin) {
		return "", errNotInteractive
	}

	prompt := promptui.Prompt{
		Label:    "Job description file",
		Validate: validateFile,
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

func validateFile(input string) error {
	path := strings.TrimSpace(input)
	if path == "" {
		return errors.New("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
