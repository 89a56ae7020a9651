package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"compramex/internal/app/chatview"
	"compramex/internal/infra/backend"
	"compramex/internal/infra/btc"
	"compramex/internal/infra/config"
	ginserver "compramex/internal/infra/http/gin"
	"compramex/internal/infra/obs"
	"compramex/internal/infra/session"
	"compramex/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	logger := obs.NewLogger(cfg.Env)
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	apiClient, err := backend.NewClient(backend.Config{
		BaseURL:     cfg.BackendBaseURL,
		CallTimeout: cfg.BackendTimeout,
	}, logger)
	if err != nil {
		logger.Error("backend client init failed", "error", err)
		os.Exit(1)
	}

	chatStore := memory.NewChatStore()
	views := chatview.NewManager(apiClient, chatStore, logger, cfg.ChatPollEvery)
	sessions := session.NewStore(cfg.SessionTTL)

	converter := btc.NewConverter(logger)
	scheduler := cron.New()
	if err := converter.Schedule(scheduler, cfg.BTCRefreshSpec); err != nil {
		logger.Error("btc refresh schedule invalid", "spec", cfg.BTCRefreshSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	chatHandler := ginserver.ChatHandler{
		Views:   views,
		Backend: apiClient,
		BaseCtx: ctx,
		Logger:  logger,
	}
	handlers := ginserver.Handlers{
		Auth: ginserver.AuthHandler{Backend: apiClient, Sessions: sessions, Logger: logger},
		Catalog: ginserver.CatalogHandler{
			Backend:   apiClient,
			Converter: converter,
			Contactor: chatHandler,
			Logger:    logger,
		},
		Chat:           chatHandler,
		Dashboard:      ginserver.DashboardHandler{Backend: apiClient, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Sessions: sessions}.Handle,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, handlers)

	go func() {
		<-ctx.Done()
		views.CloseAll()
		scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "backend", cfg.BackendBaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}
