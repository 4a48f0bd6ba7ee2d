package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/doctrans/internal/api"
	"github.com/dgallion1/doctrans/internal/config"
	"github.com/dgallion1/doctrans/internal/ocr"
	"github.com/dgallion1/doctrans/internal/pipeline"
	"github.com/dgallion1/doctrans/internal/translate"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize provider clients. The translation deployment is mandatory;
	// the vision deployment is optional and image uploads fail closed without it.
	translator, err := translate.NewClient(translate.Options{
		Endpoint:   cfg.OpenAIEndpoint,
		APIKey:     cfg.OpenAIKey,
		Deployment: cfg.OpenAIDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.TranslateTimeout,
	})
	if err != nil {
		log.Error("invalid translation configuration", "error", err)
		os.Exit(1)
	}

	recognizer := ocr.NewAdapter(ocr.Options{
		Endpoint:   cfg.OpenAIEndpoint,
		APIKey:     cfg.OpenAIKey,
		Deployment: cfg.VisionDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.OCRTimeout,
	})
	if !recognizer.Configured() {
		log.Warn("ocr disabled: no vision deployment configured")
	}

	proc := pipeline.NewProcessor(translator, recognizer, log, cfg.MaxTokensPerChunk, cfg.MaxConcurrentTranslate)

	results := pipeline.NewResultStore(cfg.ResultTTL)
	go results.Run(ctx)

	srv := api.NewServer(proc, results, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting doctrans", "port", cfg.Port, "deployment", translator.Deployment())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
