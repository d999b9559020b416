package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-admin/internal/config"
	"github.com/linemk/shop-admin/internal/notify"
	"github.com/linemk/shop-admin/internal/service"
	"github.com/linemk/shop-admin/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Mongo        *mongo.Client
	Redis        *redis.Client
	OrderService service.OrderService
}

// NewApp создаёт новый экземпляр App: клиенты хранилищ, источники заказов и сервис
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	// недоступность резервного хранилища на старте не фатальна: драйвер переподключается сам
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		log.Warn("mongo is not reachable yet", slog.Any("error", err))
	}

	app := &App{
		Config: cfg,
		Logger: log,
		Mongo:  mongoClient,
	}

	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.Redis.Addr != "" {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis is not reachable yet", slog.Any("error", err))
		}
		notifier = notify.NewRedisNotifier(log, app.Redis, cfg.Redis.Channel)
	}

	primary := storage.NewAPISource(cfg.OrdersAPI.BaseURL, cfg.OrdersAPI.Token, &http.Client{
		Timeout: cfg.OrdersAPI.Timeout,
	})
	fallback := storage.NewDocumentSource(log,
		mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection),
	)

	app.OrderService = service.NewOrderService(log, notifier, primary, fallback)

	return app, nil
}

// Close закрывает клиенты хранилищ
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if err := a.Mongo.Disconnect(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to disconnect mongo: %w", err)
	}
	return firstErr
}
