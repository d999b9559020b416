package storage

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/linemk/shop-admin/internal/domain/models"
	"github.com/linemk/shop-admin/internal/lib/timeconv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionFinder — часть *mongo.Collection, нужная резервному источнику.
type CollectionFinder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// documentSource — резервный источник, коллекция orders документного хранилища.
type documentSource struct {
	log  *slog.Logger
	coll CollectionFinder
	now  func() time.Time
}

// NewDocumentSource создаёт резервный источник заказов поверх коллекции orders.
func NewDocumentSource(log *slog.Logger, coll CollectionFinder) OrderSource {
	return &documentSource{
		log:  log,
		coll: coll,
		now:  time.Now,
	}
}

func (s *documentSource) Name() string { return "document_store" }

// ListOrders читает всю коллекцию без фильтров.
func (s *documentSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.documentSource.ListOrders"

	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query orders: %w", op, err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: failed to read orders: %w", op, err)
	}

	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, s.toOrder(documentID(doc["_id"]), doc))
	}
	return orders, nil
}

func (s *documentSource) toOrder(id string, fields map[string]any) models.Order {
	return models.Order{
		ID:              id,
		UserID:          asString(fields["userId"]),
		Items:           toItems(fields["items"]),
		Status:          models.OrderStatus(asString(fields["status"])),
		TotalAmount:     asFloat(fields["totalAmount"]),
		ShippingAddress: toAddress(fields["shippingAddress"]),
		PaymentMethod:   asString(fields["paymentMethod"]),
		PaymentStatus:   models.PaymentStatus(asString(fields["paymentStatus"])),
		OrderDate:       s.date(id, "orderDate", fields["orderDate"]),
		TrackingNumber:  asString(fields["trackingNumber"]),
		Notes:           asString(fields["notes"]),
		CreatedAt:       s.date(id, "createdAt", fields["createdAt"]),
		UpdatedAt:       s.optionalDate(id, "updatedAt", fields["updatedAt"]),
	}
}

func (s *documentSource) date(id, field string, v any) time.Time {
	if t, ok := timeconv.ToTime(v); ok {
		return t
	}
	if !timeconv.IsAbsent(v) {
		s.log.Debug("unrecognized date value, using current time",
			slog.String("order_id", id),
			slog.String("field", field),
			slog.String("type", fmt.Sprintf("%T", v)),
		)
	}
	return s.now()
}

func (s *documentSource) optionalDate(id, field string, v any) *time.Time {
	if timeconv.IsAbsent(v) {
		return nil
	}
	t := s.date(id, field, v)
	return &t
}

func documentID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	}
	return asString(v)
}

func toItems(v any) []models.OrderItem {
	raw := asSlice(v)
	items := make([]models.OrderItem, 0, len(raw))
	for _, r := range raw {
		m := asMap(r)
		if m == nil {
			continue
		}
		item := models.OrderItem{
			ProductID: asString(m["productId"]),
			Name:      asString(m["name"]),
			Price:     asFloat(m["price"]),
			Quantity:  int(asFloat(m["quantity"])),
			Image:     asString(m["image"]),
			Subtotal:  asFloat(m["subtotal"]),
		}
		if _, ok := m["subtotal"]; !ok {
			item.Subtotal = item.Price * float64(item.Quantity)
		}
		items = append(items, item)
	}
	return items
}

func toAddress(v any) models.ShippingAddress {
	m := asMap(v)
	return models.ShippingAddress{
		FullName:     asString(m["fullName"]),
		AddressLine1: asString(m["addressLine1"]),
		AddressLine2: asString(m["addressLine2"]),
		City:         asString(m["city"]),
		State:        asString(m["state"]),
		PostalCode:   asString(m["postalCode"]),
		Country:      asString(m["country"]),
		Phone:        asString(m["phone"]),
	}
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case primitive.M:
		return m
	case map[string]any:
		return m
	case primitive.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out
	}
	return nil
}

func asSlice(v any) []any {
	switch a := v.(type) {
	case primitive.A:
		return a
	case []any:
		return a
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case primitive.ObjectID:
		return s.Hex()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// asFloat приводит число из документа к float64. NaN и бесконечности дают 0.
func asFloat(v any) float64 {
	f := rawFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func rawFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err == nil {
			return f
		}
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err == nil {
			return f
		}
	}
	return 0
}
