package graphdb

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/shopspring/decimal"
)

// Row decoders are lenient: a missing or mistyped column yields the zero value.

func stringValue(row map[string]any, key string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return ""
}

func optionalString(row map[string]any, key string) *string {
	s, ok := row[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func int64Value(row map[string]any, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func optionalFloat(row map[string]any, key string) *float64 {
	switch v := row[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

// timeValue accepts every temporal shape the driver can hand back.
func timeValue(row map[string]any, key string) (time.Time, bool) {
	switch v := row[key].(type) {
	case time.Time:
		return v, true
	case neo4j.LocalDateTime:
		return v.Time(), true
	case neo4j.Date:
		return v.Time(), true
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timestampString renders a temporal column as RFC 3339, or "" when absent.
func timestampString(row map[string]any, key string) string {
	t, ok := timeValue(row, key)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

// dateString renders a date column as YYYY-MM-DD whatever shape it came in.
func dateString(row map[string]any, key string) string {
	if s, ok := row[key].(string); ok && len(s) >= len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	t, ok := timeValue(row, key)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// satisfactionRate is positive/total as a percentage rounded half away from
// zero to two decimals, and 0 when total is 0.
func satisfactionRate(positive, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(positive * 100).Div(decimal.NewFromInt(total)).Round(2)
	f, _ := rate.Float64()
	return f
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
