package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotInteger is returned when a value is not a plain decimal integer.
var ErrNotInteger = errors.New("not a decimal integer")

// SplitList splits a delimited attribute value, preserving order and duplicates.
// An empty string yields an empty list rather than a single empty element.
func SplitList(val, sep string) []string {
	if val == "" {
		return []string{}
	}
	return strings.Split(val, sep)
}

// ParseUint parses an unsigned decimal value with no sign or whitespace.
func ParseUint(val string) (uint64, error) {
	if !isDigits(val) {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, val)
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrNotInteger, val, err)
	}
	return n, nil
}

// isDigits reports whether val is a non-empty run of ASCII digits.
func isDigits(val string) bool {
	if val == "" {
		return false
	}
	for i := 0; i < len(val); i++ {
		if val[i] < '0' || val[i] > '9' {
			return false
		}
	}
	return true
}
