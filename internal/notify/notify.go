// Package notify доставляет пользователю уведомления о неустранимых ошибках (toast в админке).
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Notification — заголовок и описание всплывающего уведомления.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier только пишет уведомление в лог.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg Notification) error {
	n.log.Error("user notification",
		slog.String("title", msg.Title),
		slog.String("description", msg.Description),
	)
	return nil
}

// Publisher — часть *redis.Client, используемая для pub/sub.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier публикует уведомления в канал, на который подписан дашборд.
type RedisNotifier struct {
	log     *slog.Logger
	pub     Publisher
	channel string
}

func NewRedisNotifier(log *slog.Logger, pub Publisher, channel string) *RedisNotifier {
	return &RedisNotifier{log: log, pub: pub, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, msg Notification) error {
	const op = "notify.RedisNotifier.Notify"
	logger := n.log.With(slog.String("op", op), slog.String("channel", n.channel))

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: failed to encode notification: %w", op, err)
	}

	logger.Error("user notification",
		slog.String("title", msg.Title),
		slog.String("description", msg.Description),
	)

	if err := n.pub.Publish(ctx, n.channel, payload).Err(); err != nil {
		logger.Error("failed to publish notification", slog.Any("error", err))
		return fmt.Errorf("%s: failed to publish: %w", op, err)
	}
	return nil
}
