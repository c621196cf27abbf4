package errors

import (
	"math"
	"unicode"
)

// maxIDLength bounds shape, port and link identifiers.
const maxIDLength = 256

// ValidateID checks a shape, port or link identifier.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "%s id contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidateFinite rejects NaN and infinite coordinates.
func ValidateFinite(field string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidShape, "%s must be a finite number, got %v", field, v)
		}
	}
	return nil
}

// ValidateNonNegative rejects negative or non-finite lengths.
func ValidateNonNegative(code Code, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(code, "%s must be a non-negative number, got %v", field, v)
	}
	return nil
}
