package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/lumina/internal/api"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/generator"
	"github.com/vytor/lumina/internal/jobs"
	"github.com/vytor/lumina/internal/llm"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/repository/sqlite"
	"github.com/vytor/lumina/internal/services"
	"github.com/vytor/lumina/internal/worker"
)

const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		log.Info("===========================================")
		log.Info("Lumina Server Starting")
		log.Info("===========================================")
		log.Debug("addr=%s", cfg.Addr)
		log.Debug("db_path=%s", cfg.DBPath)
		log.Debug("log_level=%s", cfg.LogLevel)
		log.Debug("generation_worker_count=%d", cfg.GenerationWorkerCount)
		log.Debug("generation_queue_size=%d", cfg.GenerationQueueSize)
		log.Debug("review_session_ttl=%s", cfg.ReviewSessionTTL)
		log.Debug("review_order=%s", cfg.ReviewOrder)
		log.Debug("llm_provider=%s", cfg.LLMProvider)

		ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
		defer cancel()

		database, err := openDB(ctx, log, cfg)
		if err != nil {
			return err
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()

		clock := flashcard.SystemClock
		ordering, _ := flashcard.ParseOrdering(cfg.ReviewOrder) // checked by Validate

		profileRepo := sqlite.NewProfileRepository(database.DB)
		studyRepo := sqlite.NewStudyRepository(database.DB)
		flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
		statsRepo := sqlite.NewStatsRepository(database.DB)
		progressRepo := sqlite.NewProgressRepository(database.DB)

		// Card generation is optional: without a provider, sessions are
		// recorded and notes are kept but no cards are drafted.
		var jobQueue jobs.JobQueue
		var generationPool *worker.Pool
		provider, err := llm.NewProvider(ctx, cfg.LLM())
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			log.Info("no LLM provider configured, card generation disabled")
		case err != nil:
			return err
		default:
			log.Info("card generation enabled: model=%s", provider.ModelID())
			generationPool = worker.NewPool(cfg.GenerationWorkerCount, cfg.GenerationQueueSize)
			generationPool.Start(ctx)
			jobQueue = jobs.NewWorkerQueue(generationPool, generator.New(provider), flashcardRepo, clock)
		}

		reviewService := services.NewReviewService(flashcardRepo, clock, services.ReviewOptions{
			Ordering: ordering,
			TTL:      cfg.ReviewSessionTTL,
		})
		go reviewService.RunSweeper(ctx, sweepInterval)

		srv := &api.Server{
			DB:               database.DB,
			ProfileService:   services.NewProfileService(profileRepo, clock),
			StudyService:     services.NewStudyService(studyRepo, profileRepo, jobQueue, clock),
			FlashcardService: services.NewFlashcardService(flashcardRepo, studyRepo, clock),
			ReviewService:    reviewService,
			StatsService:     services.NewStatsService(statsRepo, clock),
			ProgressService:  services.NewProgressService(progressRepo, clock),
		}

		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      srv.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info("HTTP server listening on %s", cfg.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serveErr <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-stop:
			log.Info("received signal %v, initiating graceful shutdown", sig)
		case err := <-serveErr:
			log.Error("HTTP server error: %v", err)
			return err
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		log.Debug("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error: %v", err)
		}

		if generationPool != nil {
			log.Debug("stopping generation pool")
			generationPool.Stop()
		}
		cancel()

		log.Info("===========================================")
		log.Info("Lumina Server Stopped")
		log.Info("===========================================")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides ADDR env var)")
}
