package mapping

import (
	"math"
	"strconv"
	"strings"
	"time"
)

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

// getPath walks nested objects; any missing level yields nil.
func getPath(src map[string]any, keys ...string) any {
	current := src
	for i, key := range keys {
		if current == nil {
			return nil
		}
		if i == len(keys)-1 {
			return current[key]
		}
		current = getMap(current, key)
	}
	return nil
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	return asString(src[key])
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func asString(raw any) string {
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64, float32, int, int64, int32:
		return StatValue(typed)
	default:
		return ""
	}
}

func asInt64(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case float64:
		return integralFloat(typed)
	case float32:
		return integralFloat(float64(typed))
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// integralFloat rejects fractional or out-of-range JSON numbers instead of
// truncating them.
func integralFloat(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func asFloat64(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func getID(src map[string]any, keys ...string) int64 {
	for _, key := range keys {
		if src == nil {
			return 0
		}
		if v, ok := asInt64(src[key]); ok && v > 0 {
			return v
		}
	}
	return 0
}

func int64Ptr(raw any) *int64 {
	v, ok := asInt64(raw)
	if !ok || v <= 0 {
		return nil
	}
	return &v
}

func intPtr(raw any) *int {
	v, ok := asInt64(raw)
	if !ok {
		return nil
	}
	out := int(v)
	return &out
}

func stringPtr(raw any) *string {
	v := asString(raw)
	if v == "" {
		return nil
	}
	return &v
}

// StatValue renders a raw provider value the way it is stored in AthleteStat.Value.
// Whole numbers lose their fractional part; strings pass through trimmed.
func StatValue(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// NumericValue parses a stat value for the numeric season and game tables.
// MLB sends rates as strings such as ".312".
func NumericValue(raw any) (float64, bool) {
	return asFloat64(raw)
}

// ParseDate takes the calendar date of an ISO-8601 timestamp as given. A
// trailing Z is dropped and no timezone conversion happens.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	if raw == "" {
		return nil
	}
	if idx := strings.IndexAny(raw, "T "); idx >= 0 {
		raw = raw[:idx]
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil
	}
	return &parsed
}
