package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/linemk/shop-admin/internal/metrics"
	"github.com/linemk/shop-admin/internal/notify"
	"github.com/linemk/shop-admin/internal/storage"
)

var ErrAllSourcesFailed = errors.New("all order sources failed")

// текст уведомления при полном отказе источников
const (
	FailureTitle       = "Error"
	FailureDescription = "Failed to load orders. Please try again later."
)

// OrderService определяет интерфейс представления заказов админки.
type OrderService interface {
	// FetchOrders загружает заказы из первого доступного источника.
	FetchOrders(ctx context.Context) ([]models.Order, error)
	// View загружает заказы и строит сводку и список для вкладки.
	View(ctx context.Context, tab string) (*OrdersView, error)
}

// OrdersView — результат одной загрузки представления заказов
type OrdersView struct {
	Tab     string         `json:"tab"`
	Orders  []models.Order `json:"orders"`
	Summary Summary        `json:"summary"`
}

type orderService struct {
	log      *slog.Logger
	sources  []storage.OrderSource
	notifier notify.Notifier
}

// NewOrderService создаёт сервис. Источники перечисляются в порядке приоритета.
func NewOrderService(log *slog.Logger, notifier notify.Notifier, sources ...storage.OrderSource) OrderService {
	return &orderService{
		log:      log,
		sources:  sources,
		notifier: notifier,
	}
}

// FetchOrders опрашивает источники по порядку, первый успешный ответ используется целиком.
// Ошибка источника только логируется. Если отказали все, пользователь получает одно уведомление,
// а список сбрасывается в пустой. Отмена ctx прерывает перебор и возвращает ошибку контекста.
func (s *orderService) FetchOrders(ctx context.Context) ([]models.Order, error) {
	const op = "service.OrderService.FetchOrders"
	logger := s.log.With(slog.String("op", op))

	for _, src := range s.sources {
		orders, err := src.ListOrders(ctx)
		if err != nil {
			// запрос отменён клиентом: это не отказ источников, уведомление не нужно
			if ctxErr := ctx.Err(); ctxErr != nil {
				logger.Info("order fetch cancelled",
					slog.String("source", src.Name()),
					slog.Any("error", ctxErr),
				)
				return []models.Order{}, fmt.Errorf("%s: %w", op, ctxErr)
			}
			metrics.OrderSourceRequestsTotal.WithLabelValues(src.Name(), metrics.OutcomeFailure).Inc()
			logger.Warn("order source failed, trying next",
				slog.String("source", src.Name()),
				slog.Any("error", err),
			)
			continue
		}

		metrics.OrderSourceRequestsTotal.WithLabelValues(src.Name(), metrics.OutcomeSuccess).Inc()
		metrics.OrdersLoaded.Set(float64(len(orders)))
		logger.Info("orders loaded",
			slog.String("source", src.Name()),
			slog.Int("count", len(orders)),
		)
		if orders == nil {
			orders = []models.Order{}
		}
		return orders, nil
	}

	metrics.OrderSourcesExhaustedTotal.Inc()
	logger.Error("all order sources failed", slog.Int("sources", len(s.sources)))

	if err := s.notifier.Notify(ctx, notify.Notification{
		Title:       FailureTitle,
		Description: FailureDescription,
		Variant:     "destructive",
	}); err != nil {
		logger.Error("failed to notify user", slog.Any("error", err))
	}

	return []models.Order{}, fmt.Errorf("%s: %w", op, ErrAllSourcesFailed)
}

func (s *orderService) View(ctx context.Context, tab string) (*OrdersView, error) {
	if tab == "" {
		tab = TabAll
	}

	orders, err := s.FetchOrders(ctx)
	view := &OrdersView{
		Tab:     tab,
		Orders:  FilterByStatus(orders, tab),
		Summary: Summarize(orders),
	}
	return view, err
}
