package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antoniostano/aria/internal/brain"
	"github.com/antoniostano/aria/internal/config"
	"github.com/antoniostano/aria/internal/httpapi"
	"github.com/antoniostano/aria/internal/loop"
	"github.com/antoniostano/aria/internal/memory"
	"github.com/antoniostano/aria/internal/observability"
	"github.com/antoniostano/aria/internal/reminder"
	"github.com/antoniostano/aria/internal/respond"
	"github.com/antoniostano/aria/internal/session"
	"github.com/antoniostano/aria/internal/voice"
	"github.com/antoniostano/aria/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := memory.NewStore(ctx, cfg.DatabaseURL, cfg.MemoryFile)
	if err != nil {
		log.Fatalf("memory store init failed: %v", err)
	}
	defer store.Close()

	reminders, err := reminder.Open(cfg.ReminderLog)
	if err != nil {
		log.Fatalf("reminder log init failed: %v", err)
	}

	adapter, err := brain.NewAdapter(brain.Config{
		Mode:            cfg.BrainProvider,
		Model:           cfg.BrainModel,
		MaxTokens:       cfg.BrainMaxTok,
		Timeout:         cfg.BrainTimeout,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		HTTPURL:         cfg.BrainHTTPURL,
	})
	if err != nil {
		log.Fatalf("brain adapter init failed: %v", err)
	}

	provider, err := voice.NewProvider(voice.Config{
		Mode:          cfg.VoiceProvider,
		GatewayURL:    cfg.VoiceGatewayURL,
		GatewayKey:    cfg.VoiceGatewayKey,
		Language:      cfg.Language,
		ListenTimeout: cfg.ListenTimeout,
	})
	if err != nil {
		log.Fatalf("voice provider init failed: %v", err)
	}
	defer provider.Close()

	templates, err := workspace.LoadTemplates(cfg.TemplateFile)
	if err != nil {
		log.Fatalf("template load failed: %v", err)
	}
	ws, err := workspace.New(cfg.OutputDir, templates)
	if err != nil {
		log.Fatalf("workspace init failed: %v", err)
	}

	history := session.NewHistory(cfg.HistoryWindow)
	responder := respond.New(adapter, store, ws, reminders, cfg.PersonaID, cfg.HistoryWindow, metrics, logger)

	conversation := loop.New(provider, provider, responder, store, reminders, history, metrics, logger, loop.Config{
		SpeakEnabled:     cfg.SpeakEnabled,
		ReminderInterval: cfg.ReminderInterval,
	})

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	var httpServer *http.Server
	if cfg.BindAddr != "" {
		api := httpapi.New(cfg, store, reminders, conversation)
		httpServer = &http.Server{
			Addr:    cfg.BindAddr,
			Handler: api.Router(),
		}
		go func() {
			logger.Info("http api listening", "addr", cfg.BindAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("listen error: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		runCancel()
	}()

	err = conversation.Run(runCtx)

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("graceful shutdown failed", "error", shutdownErr)
			_ = httpServer.Close()
		}
	}

	switch {
	case err == nil:
		logger.Info("session ended")
	case errors.Is(err, context.Canceled):
		logger.Info("session interrupted")
	default:
		logger.Error("conversation loop failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}
