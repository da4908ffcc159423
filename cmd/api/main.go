package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentica-labs/widget-backend/internal/api/router"
	appconfig "github.com/agentica-labs/widget-backend/internal/config"
	"github.com/agentica-labs/widget-backend/internal/conversation"
	"github.com/agentica-labs/widget-backend/internal/leads"
	"github.com/agentica-labs/widget-backend/internal/notify"
	"github.com/agentica-labs/widget-backend/internal/observability/metrics"
	"github.com/agentica-labs/widget-backend/internal/webchat"
	"github.com/agentica-labs/widget-backend/pkg/logging"
)

func main() {
	// Load .env if present; plain environment variables otherwise.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	}
	logger.Info("starting widget-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"model", cfg.GeminiModelID,
	)

	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer gemini.Close()

	chatMetrics := metrics.NewChatMetrics(nil)

	sessionStore := conversation.NewSessionStore(cfg.MaxHistory, cfg.SessionTTL)
	sessionStore.StartSweeper(ctx, cfg.SessionSweepInterval)

	extractor := conversation.NewLeadExtractor(gemini, cfg.ExtractorModelID(), logger)
	chatService := conversation.NewChatService(gemini, extractor, sessionStore, chatMetrics, logger, conversation.Options{
		ModelID:        cfg.GeminiModelID,
		MaxTokens:      int32(cfg.GeminiMaxOutputTokens),
		Temperature:    float32(cfg.GeminiTemperature),
		RequestTimeout: cfg.GeminiTimeout,
	})

	notifier := notify.NewTelegramNotifier(notify.Config{
		BaseURL:  cfg.TelegramBaseURL,
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
		Timeout:  cfg.TelegramTimeout,
		Logger:   logger,
	})
	if !notifier.Enabled() {
		logger.Warn("telegram notifier disabled: TELEGRAM_TOKEN or TELEGRAM_CHAT_ID missing")
	}

	leadsRepo := leads.NewInMemoryRepository()
	leadsHandler := leads.NewHandler(leadsRepo, notifier, chatMetrics, logger)
	chatHandler := conversation.NewHandler(chatService, sessionStore, chatMetrics, cfg.GeminiModelID, logger)
	webchatHandler := webchat.NewHandler(chatService, sessionStore, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		LeadsHandler:       leadsHandler,
		WebChatHandler:     webchatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
