package util

import (
	"math"
	"strconv"
	"strings"
)

// MustParseUint converts s to an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ToNumber parses a form value the way a browser's Number() would for the
// inputs this service receives; blank, non-numeric or non-finite values are 0.
func ToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToInt is ToNumber truncated toward zero.
func ToInt(s string) int {
	return int(ToNumber(s))
}

// ParsePage reads page/limit query values with sane bounds.
func ParsePage(pageStr, limitStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
