// Package timeconv приводит даты из разных источников заказов к time.Time.
package timeconv

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ToTime распознаёт значение даты. Второе значение false, если тип или формат не распознан.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case primitive.DateTime:
		return t.Time(), true
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC(), true
	case string:
		return parseString(t)
	case float64:
		return time.UnixMilli(int64(t)).UTC(), true
	case int64:
		return time.UnixMilli(t).UTC(), true
	case int32:
		return time.UnixMilli(int64(t)).UTC(), true
	case int:
		return time.UnixMilli(int64(t)).UTC(), true
	}
	return time.Time{}, false
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrNow возвращает распознанную дату или now(), если значения нет или оно не распознано.
func OrNow(v any, now func() time.Time) time.Time {
	if t, ok := ToTime(v); ok {
		return t
	}
	return now()
}

// Optional возвращает nil для отсутствующего значения, иначе ведёт себя как OrNow.
func Optional(v any, now func() time.Time) *time.Time {
	if IsAbsent(v) {
		return nil
	}
	t := OrNow(v, now)
	return &t
}

// IsAbsent сообщает, что поле даты не заполнено вовсе.
func IsAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case *time.Time:
		return t == nil
	case primitive.Null, primitive.Undefined:
		return true
	}
	return false
}
