package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/linemk/shop-admin/internal/app/handlers"
	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/linemk/shop-admin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderService — фиктивная реализация service.OrderService
type fakeOrderService struct {
	orders  []models.Order
	err     error
	lastTab string
}

func (f *fakeOrderService) FetchOrders(ctx context.Context) ([]models.Order, error) {
	if f.err != nil {
		return []models.Order{}, f.err
	}
	return f.orders, nil
}

func (f *fakeOrderService) View(ctx context.Context, tab string) (*service.OrdersView, error) {
	if tab == "" {
		tab = service.TabAll
	}
	f.lastTab = tab
	orders, err := f.FetchOrders(ctx)
	return &service.OrdersView{
		Tab:     tab,
		Orders:  service.FilterByStatus(orders, tab),
		Summary: service.Summarize(orders),
	}, err
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: "1", Status: models.StatusPending, PaymentStatus: models.PaymentPending, TotalAmount: 10},
		{ID: "2", Status: models.StatusDelivered, PaymentStatus: models.PaymentPaid, TotalAmount: 40},
		{ID: "3", Status: models.StatusProcessing, PaymentStatus: models.PaymentPaid, TotalAmount: 15},
	}
}

type ordersBody struct {
	Tab     string          `json:"tab"`
	Orders  []models.Order  `json:"orders"`
	Summary service.Summary `json:"summary"`
	Error   string          `json:"error"`
}

func TestOrdersHandler_AllTab(t *testing.T) {
	svc := &fakeOrderService{orders: sampleOrders()}
	handler := handlers.OrdersHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ordersBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "all", body.Tab)
	require.Len(t, body.Orders, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{body.Orders[0].ID, body.Orders[1].ID, body.Orders[2].ID})
	assert.Equal(t, 3, body.Summary.OrderCounts.All)
	assert.Equal(t, 55.0, body.Summary.TotalRevenue)
	assert.Equal(t, 2, body.Summary.OrdersNeedingAttention)
	assert.Empty(t, body.Error)
}

func TestOrdersHandler_StatusTab(t *testing.T) {
	svc := &fakeOrderService{orders: sampleOrders()}
	handler := handlers.OrdersHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders?status=delivered", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "delivered", svc.lastTab)

	var body ordersBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "2", body.Orders[0].ID)
	// сводка считается по всем заказам, а не по вкладке
	assert.Equal(t, 3, body.Summary.OrderCounts.All)
}

func TestOrdersHandler_InvalidTab(t *testing.T) {
	handler := handlers.OrdersHandler(newLogger(), &fakeOrderService{})

	req := httptest.NewRequest("GET", "/api/admin/orders?status=archived", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrdersHandler_AllSourcesFailed(t *testing.T) {
	svc := &fakeOrderService{err: fmt.Errorf("service: %w", service.ErrAllSourcesFailed)}
	handler := handlers.OrdersHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body ordersBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Empty(t, body.Orders)
	assert.Equal(t, 0, body.Summary.OrderCounts.All)
	assert.Equal(t, service.FailureDescription, body.Error)
}

func TestOrdersHandler_UnexpectedError(t *testing.T) {
	svc := &fakeOrderService{err: assert.AnError}
	handler := handlers.OrdersHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSummaryHandler_Success(t *testing.T) {
	handler := handlers.SummaryHandler(newLogger(), &fakeOrderService{orders: sampleOrders()})

	req := httptest.NewRequest("GET", "/api/admin/orders/summary", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body service.Summary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, service.StatusCounts{All: 3, Pending: 1, Processing: 1, Delivered: 1}, body.OrderCounts)
	assert.Equal(t, 55.0, body.TotalRevenue)
	assert.Equal(t, 2, body.OrdersNeedingAttention)
}

func TestSummaryHandler_AllSourcesFailed(t *testing.T) {
	svc := &fakeOrderService{err: service.ErrAllSourcesFailed}
	handler := handlers.SummaryHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders/summary", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), service.FailureDescription)
}

func TestHealthHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	handlers.HealthHandler().ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestOrdersHandler_CancelledRequest(t *testing.T) {
	svc := &fakeOrderService{err: fmt.Errorf("service: %w", context.Canceled)}
	handler := handlers.OrdersHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, 499, rr.Code)
	assert.NotContains(t, rr.Body.String(), service.FailureDescription)
}

func TestSummaryHandler_CancelledRequest(t *testing.T) {
	svc := &fakeOrderService{err: context.Canceled}
	handler := handlers.SummaryHandler(newLogger(), svc)

	req := httptest.NewRequest("GET", "/api/admin/orders/summary", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, 499, rr.Code)
	assert.Empty(t, rr.Body.String())
}
