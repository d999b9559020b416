package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/linemk/shop-admin/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPISource_ListOrders_Success(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "o-1",
				"userId": "u-1",
				"items": [{"productId": "p-1", "name": "Sneakers", "price": 50, "quantity": 2, "subtotal": 100}],
				"status": "shipped",
				"totalAmount": 100,
				"shippingAddress": {"fullName": "Jane Roe", "city": "Berlin"},
				"paymentMethod": "card",
				"paymentStatus": "paid",
				"orderDate": "2024-03-10T08:30:00Z",
				"createdAt": "2024-03-10T08:29:00Z",
				"updatedAt": "2024-03-11T10:00:00Z",
				"trackingNumber": "TRK1"
			}
		]`))
	}))
	defer srv.Close()

	src := storage.NewAPISource(srv.URL+"/", "secret-token", srv.Client())
	orders, err := src.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "/api/admin/orders", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)

	o := orders[0]
	assert.Equal(t, "o-1", o.ID)
	assert.Equal(t, models.StatusShipped, o.Status)
	assert.Equal(t, models.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, 100.0, o.TotalAmount)
	assert.Equal(t, "Jane Roe", o.ShippingAddress.FullName)
	assert.Equal(t, "TRK1", o.TrackingNumber)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC), o.OrderDate)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 29, 0, 0, time.UTC), o.CreatedAt)
	require.NotNil(t, o.UpdatedAt)
	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), *o.UpdatedAt)
}

func TestAPISource_ListOrders_MissingDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "o-2", "status": "pending", "paymentStatus": "pending", "orderDate": "yesterday-ish"}]`))
	}))
	defer srv.Close()

	before := time.Now()
	orders, err := storage.NewAPISource(srv.URL, "", srv.Client()).ListOrders(context.Background())
	after := time.Now()
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.False(t, o.OrderDate.Before(before) || o.OrderDate.After(after), "order date should default to now")
	assert.False(t, o.CreatedAt.Before(before) || o.CreatedAt.After(after), "created at should default to now")
	assert.Nil(t, o.UpdatedAt)
}

func TestAPISource_ListOrders_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	orders, err := storage.NewAPISource(srv.URL, "", srv.Client()).ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, gotAuth)
}

func TestAPISource_ListOrders_NonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusUnauthorized} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", code)
		}))

		orders, err := storage.NewAPISource(srv.URL, "", srv.Client()).ListOrders(context.Background())
		assert.ErrorIs(t, err, storage.ErrUnexpectedStatus)
		assert.Nil(t, orders)
		srv.Close()
	}
}

func TestAPISource_ListOrders_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":`))
	}))
	defer srv.Close()

	_, err := storage.NewAPISource(srv.URL, "", srv.Client()).ListOrders(context.Background())
	assert.Error(t, err)
}

func TestAPISource_ListOrders_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := storage.NewAPISource(url, "", nil).ListOrders(context.Background())
	assert.Error(t, err)
}

func TestAPISource_ListOrders_SubtotalOnlyFilledWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "o-1", "items": [
			{"productId": "p-1", "price": 10, "quantity": 2, "subtotal": 0},
			{"productId": "p-2", "price": 5, "quantity": 3}
		]}]`))
	}))
	defer srv.Close()

	orders, err := storage.NewAPISource(srv.URL, "", srv.Client()).ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)

	// явный ноль от API сохраняется, как и в документном источнике
	assert.Equal(t, 0.0, orders[0].Items[0].Subtotal)
	assert.Equal(t, 15.0, orders[0].Items[1].Subtotal)
}
