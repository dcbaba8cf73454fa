// Package validation provides the payload assertions run before a request
// is sent to the portal.
package validation

import (
	"math"
	"strconv"

	"github.com/rezonia/earsiv-client/internal/model"
)

// NotEmptyString fails unless value is a non-empty string.
func NotEmptyString(value any, field string) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return model.NewValidationError(field, value, "must be a non-empty string")
	}
	return nil
}

// GreaterThan fails unless value is a finite number strictly greater than
// min. String-encoded numbers are rejected; the creation payload serializes
// monetary fields only after validation.
func GreaterThan(value any, min float64, field string) error {
	n, ok := asNumber(value)
	if !ok || math.IsInf(n, 0) || math.IsNaN(n) || n <= min {
		limit := strconv.FormatFloat(min, 'f', -1, 64)
		return model.NewValidationError(field, value, "must be a number greater than "+limit)
	}
	return nil
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
