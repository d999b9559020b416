package service

import (
	"math"

	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/shopspring/decimal"
)

// TabAll — вкладка со всеми заказами
const TabAll = "all"

// StatusCounts — количество заказов по статусам и общее количество
type StatusCounts struct {
	All        int `json:"all"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// Summary — сводка для карточек над таблицей заказов
type Summary struct {
	OrderCounts            StatusCounts `json:"orderCounts"`
	TotalRevenue           float64      `json:"totalRevenue"`
	OrdersNeedingAttention int          `json:"ordersNeedingAttention"`
}

// CountByStatus считает заказы по статусам. All — длина списка,
// поэтому сумма по статусам совпадает с All, пока статусы из перечисления.
func CountByStatus(orders []models.Order) StatusCounts {
	counts := StatusCounts{All: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusProcessing:
			counts.Processing++
		case models.StatusShipped:
			counts.Shipped++
		case models.StatusDelivered:
			counts.Delivered++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// TotalRevenue суммирует totalAmount только оплаченных заказов. Статус заказа не учитывается.
func TotalRevenue(orders []models.Order) float64 {
	sum := decimal.Zero
	for _, o := range orders {
		if o.PaymentStatus != models.PaymentPaid {
			continue
		}
		// decimal не принимает NaN и бесконечности
		if math.IsNaN(o.TotalAmount) || math.IsInf(o.TotalAmount, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	return sum.InexactFloat64()
}

// NeedingAttention — заказы в статусах pending и processing
func NeedingAttention(orders []models.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == models.StatusPending || o.Status == models.StatusProcessing {
			n++
		}
	}
	return n
}

// FilterByStatus возвращает заказы выбранной вкладки с сохранением порядка.
// Для вкладки "all" возвращается исходный список без изменений.
func FilterByStatus(orders []models.Order, tab string) []models.Order {
	if tab == TabAll {
		return orders
	}
	filtered := make([]models.Order, 0)
	for _, o := range orders {
		if string(o.Status) == tab {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func Summarize(orders []models.Order) Summary {
	return Summary{
		OrderCounts:            CountByStatus(orders),
		TotalRevenue:           TotalRevenue(orders),
		OrdersNeedingAttention: NeedingAttention(orders),
	}
}
