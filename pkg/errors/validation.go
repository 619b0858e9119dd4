package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds column and series identifiers.
const maxIdentifierLength = 256

// ValidateIdentifier validates a column, series or node identifier.
//
// The rules are conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s identifier cannot be empty", kind)
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s identifier too long (max %d characters)", kind, maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s identifier contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidateColumns checks that a column list can drive a stacked layout:
// at least two entries, each a valid identifier, no duplicates. Every
// failure carries ErrCodeInvalidConfig.
func ValidateColumns(cols []string) error {
	if len(cols) < 2 {
		return New(ErrCodeInvalidConfig, "at least two columns are required, got %d", len(cols))
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if err := ValidateIdentifier("column", c); err != nil {
			return Wrap(ErrCodeInvalidConfig, err, "invalid column list")
		}
		if _, dup := seen[c]; dup {
			return New(ErrCodeInvalidConfig, "duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// ValidateFraction checks that v lies in the closed unit interval.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "illegal %s: %v (must be within [0,1])", name, v)
	}
	return nil
}

// ValidateFinite checks that v is neither NaN nor infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidData, "%s is not a finite number: %v", name, v)
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
