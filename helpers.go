package ariston

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// unmarshalResponse unmarshals JSON data with consistent error formatting.
// This helper reduces boilerplate across all API response parsing.
func unmarshalResponse[T any](data []byte, resourceName string) (*T, error) {
	var resp T
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("ariston: failed to parse %s: %w (body: %s)", resourceName, err, truncatePreview(data))
	}
	return &resp, nil
}

// truncatePreview returns a truncated string for error messages.
func truncatePreview(data []byte) string {
	s := string(data)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

// toFloat64 coerces a decoded JSON value to float64.
// The service is loose about numeric types: the same property can arrive
// as a number, a numeric string, or a bool (mapped to 1/0).
func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toInt coerces a decoded JSON value to int.
// Returns false if the value is outside the valid int range.
func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case float64:
		// Check for overflow before conversion
		if v > float64(math.MaxInt) || v < float64(math.MinInt) || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		// Check for overflow on 32-bit systems
		if v > int64(math.MaxInt) || v < int64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// toBool coerces a decoded JSON value to bool.
// Numbers map to value != 0, matching how the service encodes switches.
func toBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// toString coerces a decoded JSON value to string.
func toString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// CelsiusToFahrenheit converts Celsius to Fahrenheit.
// Returns 0 if the input is NaN, Inf, or would overflow int range.
// For typical heating setpoints (-50°C to 500°C) this function is safe
// and accurate.
func CelsiusToFahrenheit(celsius float64) int {
	if math.IsNaN(celsius) || math.IsInf(celsius, 0) {
		return 0
	}
	result := celsius*9/5 + 32
	if result > float64(math.MaxInt32) || result < float64(math.MinInt32) {
		return 0
	}
	return int(result)
}

// FahrenheitToCelsius converts Fahrenheit to Celsius.
func FahrenheitToCelsius(fahrenheit int) float64 {
	return float64(fahrenheit-32) * 5 / 9
}
