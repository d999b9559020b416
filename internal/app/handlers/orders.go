package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/shop-admin/internal/service"
)

// OrdersQuery — параметры запроса списка заказов
type OrdersQuery struct {
	Status string `validate:"omitempty,oneof=all pending processing shipped delivered cancelled"`
}

// OrdersResponse — ответ GET /api/admin/orders
type OrdersResponse struct {
	*service.OrdersView
	Error string `json:"error,omitempty"`
}

// SummaryResponse — ответ GET /api/admin/orders/summary
type SummaryResponse struct {
	service.Summary
	Error string `json:"error,omitempty"`
}

var validate = validator.New()

// statusClientClosedRequest — клиент закрыл соединение до ответа (nginx 499)
const statusClientClosedRequest = 499

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// OrdersHandler обрабатывает запрос GET /api/admin/orders?status=<tab>.
// Если недоступны все источники, отдаёт 503 с пустым списком и текстом ошибки.
func OrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrdersHandler"
		logger := log.With(slog.String("op", op))

		query := OrdersQuery{Status: r.URL.Query().Get("status")}
		if err := validate.Struct(query); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "invalid status tab", http.StatusBadRequest)
			return
		}

		view, err := orderService.View(r.Context(), query.Status)
		if err != nil && isCancelled(err) {
			logger.Info("request cancelled", slog.Any("error", err))
			w.WriteHeader(statusClientClosedRequest)
			return
		}
		status := http.StatusOK
		resp := OrdersResponse{OrdersView: view}
		if err != nil {
			if !errors.Is(err, service.ErrAllSourcesFailed) || view == nil {
				logger.Error("failed to load orders", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			status = http.StatusServiceUnavailable
			resp.Error = service.FailureDescription
		}

		writeJSON(w, logger, status, resp)
	}
}

// SummaryHandler обрабатывает запрос GET /api/admin/orders/summary.
func SummaryHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SummaryHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.FetchOrders(r.Context())
		if err != nil && isCancelled(err) {
			logger.Info("request cancelled", slog.Any("error", err))
			w.WriteHeader(statusClientClosedRequest)
			return
		}
		status := http.StatusOK
		resp := SummaryResponse{Summary: service.Summarize(orders)}
		if err != nil {
			if !errors.Is(err, service.ErrAllSourcesFailed) {
				logger.Error("failed to load orders", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			status = http.StatusServiceUnavailable
			resp.Error = service.FailureDescription
		}

		writeJSON(w, logger, status, resp)
	}
}

// HealthHandler — проверка живости процесса
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}
