package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/document"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/metrics"
	"github.com/spigell/ats-scorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "listen port (default is server.port from config)")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	collector := metrics.NewCollector()

	var (
		analyzer  server.Analyzer
		predictor server.Predictor
	)

	// Without a key the API still starts and answers 501 on AI endpoints.
	generator, err := newGenerator(ctx, config.AI, logger)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		logger.Warn("AI provider is not configured, AI endpoints are disabled", zap.Error(err))
	case err != nil:
		logger.Fatal("creating a text generator", zap.Error(err))
	default:
		analyzer = newEngine(generator, config, logger, collector)
		predictor = newPredictor(generator, config, logger)
	}

	srv := server.New(server.Config{
		CORSOrigins:        config.Server.CORSOrigins,
		RateLimitPerMinute: config.Server.RateLimitPerMinute,
		MaxUploadBytes:     config.Server.MaxUploadBytes,
		AnalysisTimeout:    config.Analysis.Timeout,
	}, analyzer, predictor, document.NewExtractor(logger), collector, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.Int("port", config.Server.Port), zap.String("version", version))
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, config.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}

	logger.Info("http server stopped")
}
