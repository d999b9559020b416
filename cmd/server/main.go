package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/linemk/shop-admin/internal/app"
	"github.com/linemk/shop-admin/internal/app/handlers"
	"github.com/linemk/shop-admin/internal/config"
	"github.com/linemk/shop-admin/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-admin/internal/lib/logger"
	"github.com/linemk/shop-admin/internal/lib/logger/handlers/urllog"
	"github.com/linemk/shop-admin/internal/metrics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env не обязателен, переменные окружения имеют приоритет
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", slog.Any("error", err))
	}

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/healthz", handlers.HealthHandler())

	router.Group(func(r chi.Router) {
		r.Use(jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret))
		r.Get("/api/admin/orders", handlers.OrdersHandler(application.Logger, application.OrderService))
		r.Get("/api/admin/orders/summary", handlers.SummaryHandler(application.Logger, application.OrderService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout + cfg.OrdersAPI.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	metricsSrv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range []*http.Server{srv, metricsSrv} {
		g.Go(func() error {
			log.Info("starting server", slog.String("address", s.Addr))
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "listen %s", s.Addr)
			}
			return nil
		})
	}

	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		return application.Close(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		return
	}
	log.Info("server gracefully stopped")
}
