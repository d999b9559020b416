package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/linemk/shop-admin/internal/lib/timeconv"
)

const ordersPath = "/api/admin/orders"

// apiOrder — запись заказа в ответе REST API. Даты приходят в сериализованном виде.
type apiOrder struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	Items           []apiOrderItem         `json:"items"`
	Status          models.OrderStatus     `json:"status"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentStatus   models.PaymentStatus   `json:"paymentStatus"`
	OrderDate       any                    `json:"orderDate"`
	TrackingNumber  string                 `json:"trackingNumber"`
	Notes           string                 `json:"notes"`
	CreatedAt       any                    `json:"createdAt"`
	UpdatedAt       any                    `json:"updatedAt"`
}

// apiOrderItem — позиция заказа в ответе API. Subtotal nil, если поле не пришло.
type apiOrderItem struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Image     string   `json:"image"`
	Subtotal  *float64 `json:"subtotal"`
}

// apiSource — основной источник, REST эндпоинт админки.
type apiSource struct {
	baseURL string
	token   string
	http    *http.Client
	now     func() time.Time
}

// NewAPISource создаёт основной источник заказов. Пустой token отключает заголовок Authorization.
func NewAPISource(baseURL, token string, client *http.Client) OrderSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &apiSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    client,
		now:     time.Now,
	}
}

func (s *apiSource) Name() string { return "api" }

// ListOrders выполняет GET /api/admin/orders. Любой не-2xx ответ считается ошибкой.
func (s *apiSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.apiSource.ListOrders"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+ordersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// тело дочитываем, чтобы соединение вернулось в пул
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w: %d", op, ErrUnexpectedStatus, resp.StatusCode)
	}

	var records []apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: failed to decode orders: %w", op, err)
	}

	orders := make([]models.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, s.toOrder(rec))
	}
	return orders, nil
}

func (s *apiSource) toOrder(rec apiOrder) models.Order {
	return models.Order{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Items:           apiItems(rec.Items),
		Status:          rec.Status,
		TotalAmount:     rec.TotalAmount,
		ShippingAddress: rec.ShippingAddress,
		PaymentMethod:   rec.PaymentMethod,
		PaymentStatus:   rec.PaymentStatus,
		OrderDate:       timeconv.OrNow(rec.OrderDate, s.now),
		TrackingNumber:  rec.TrackingNumber,
		Notes:           rec.Notes,
		CreatedAt:       timeconv.OrNow(rec.CreatedAt, s.now),
		UpdatedAt:       timeconv.Optional(rec.UpdatedAt, s.now),
	}
}

// apiItems досчитывает subtotal только для позиций, где API его не прислал
func apiItems(raw []apiOrderItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(raw))
	for _, r := range raw {
		item := models.OrderItem{
			ProductID: r.ProductID,
			Name:      r.Name,
			Price:     r.Price,
			Quantity:  r.Quantity,
			Image:     r.Image,
		}
		if r.Subtotal != nil {
			item.Subtotal = *r.Subtotal
		} else {
			item.Subtotal = item.Price * float64(item.Quantity)
		}
		items = append(items, item)
	}
	return items
}
