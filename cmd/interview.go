package cmd

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/interview"
	"github.com/spigell/ats-scorer/internal/logger"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Estimate the chance of getting an interview for a job",
	Run: func(cmd *cobra.Command, _ []string) {
		predictInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().String("profile", "", "profile summary text")
	interviewCmd.Flags().String("profile-file", "", "file with the profile summary")
	interviewCmd.Flags().String("job", "", "job description file")
	interviewCmd.Flags().StringP("resume", "r", "", "optional resume file (PDF, HTML or plain text)")

	interviewCmd.MarkFlagRequired("job")
	interviewCmd.MarkFlagsMutuallyExclusive("profile", "profile-file")
}

func predictInterview(cmd *cobra.Command) {
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

	profile, _ := cmd.Flags().GetString("profile")
	if file, _ := cmd.Flags().GetString("profile-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal("reading profile summary", zap.String("file", file), zap.Error(err))
		}
		profile = string(data)
	}
	if strings.TrimSpace(profile) == "" {
		logger.Fatal("profile summary is required", zap.String("hint", "pass --profile or --profile-file"))
	}

	extractor := document.NewExtractor(logger)

	jobFile, _ := cmd.Flags().GetString("job")
	job, err := readDocument(ctx, extractor, jobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.String("file", jobFile), zap.Error(err))
	}

	var resume string
	if resumeFile, _ := cmd.Flags().GetString("resume"); resumeFile != "" {
		resume, err = readDocument(ctx, extractor, resumeFile)
		if err != nil {
			logger.Fatal("reading resume", zap.String("file", resumeFile), zap.Error(err))
		}
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating a text generator", zap.Error(err))
	}

	runCtx, cancel := withOptionalTimeout(ctx, config.Analysis.Timeout)
	defer cancel()

	prediction, err := newPredictor(generator, config, logger).Predict(runCtx, interview.Request{
		ResumeText:     resume,
		ProfileSummary: profile,
		JobDescription: job,
	})
	if err != nil {
		logger.Fatal("predicting interview probability", zap.Error(err))
	}

	if err := writeJSON(cmd.OutOrStdout(), prediction); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}
