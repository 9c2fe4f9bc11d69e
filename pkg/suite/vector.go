package suite

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadVector is returned for bit strings containing anything but '0'
// and '1'.
var ErrBadVector = errors.New("invalid bit vector")

// ParseVector parses a positional bit string such as "101". The empty
// string is a valid zero-width vector.
func ParseVector(s string) ([]bool, error) {
	out := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			out[i] = true
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrBadVector, s[i], i)
		}
	}
	return out, nil
}

// FormatVector renders values as a positional bit string.
func FormatVector(values []bool) string {
	var b strings.Builder
	b.Grow(len(values))
	for _, v := range values {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
