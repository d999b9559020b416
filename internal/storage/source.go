package storage

import (
	"context"
	"errors"

	"github.com/linemk/shop-admin/internal/domain/models"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// OrderSource описывает один источник заказов. Источники опрашиваются по приоритету.
type OrderSource interface {
	// Name возвращает имя источника для логов и метрик.
	Name() string
	// ListOrders возвращает все заказы источника.
	ListOrders(ctx context.Context) ([]models.Order, error)
}
