package utils

import (
	"strconv"
	"strings"
)

func Ptr[T any](v T) *T {
	return &v
}

func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Returns nil on an empty or all whitespace string
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NonNegativeIntOrNil parses a trimmed base-10 integer. Anything else,
// negatives included, is nil.
func NonNegativeIntOrNil(s string) *int {
	trimmed := StringOrNil(s)
	if trimmed == nil {
		return nil
	}
	v, err := strconv.Atoi(*trimmed)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// FormatInt renders v, or empty when v is nil.
func FormatInt(v *int, empty string) string {
	if v == nil {
		return empty
	}
	return strconv.Itoa(*v)
}
