package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"streacs/internal/api"
	"streacs/internal/config"
	"streacs/internal/engine"
	"streacs/internal/store"
	"streacs/internal/store/sqlite"
	"streacs/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	l := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(l)

	// 1. Source cache. Without one, failed fetches go straight to built-in data.
	var cache store.SourceCache = &store.NopStore{}
	if cfg.CacheDB != "" {
		db, err := sqlite.New(cfg.CacheDB)
		if err != nil {
			l.Fatal().Err(err).Str("path", cfg.CacheDB).Msg("Failed to open source cache")
		}
		cache = db
		l.Info().Str("path", cfg.CacheDB).Msg("Source cache enabled")
	}
	defer cache.Close()

	fetcher := engine.NewFetcher(cfg.FetchTimeout, cache, l)
	loader := engine.NewLoader(cfg.Sources, fetcher, l)

	// 2. Echo starts instantly; data routes answer 503 until the load finishes
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.Component(l, "http")))

	h := api.NewHandler(loader)
	h.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Load in background
	go func() {
		if _, err := loader.LoadAll(ctx); err != nil {
			l.Warn().Err(err).Msg("Stopped waiting for data load")
		}
	}()

	go func() {
		l.Info().Str("addr", cfg.Addr()).Msg("Server ready (data loading in background)")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func requestLogger(l zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := l.Info()
			if v.Error != nil {
				event = l.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
