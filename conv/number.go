package conv

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// FormatFloat formats floating point number, result always carries fraction or exponent, i.e. 1.0, 2.1, 1.0E10
func FormatFloat(v float64, bitSize int) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", errors.Newf("%v is not a valid number value", v)
	}
	abs := math.Abs(v)
	if bitSize == 32 && abs > math.MaxFloat32 {
		return "", errors.Newf("%v overflows float32", v)
	}
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		text := strconv.FormatFloat(v, 'f', -1, bitSize)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text, nil
	}
	text := strconv.FormatFloat(v, 'E', -1, bitSize)
	index := strings.IndexByte(text, 'E')
	mantissa, exponent := text[:index], text[index+1:]
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	sign := ""
	if exponent[0] == '-' {
		sign = "-"
	}
	exponent = strings.TrimLeft(exponent[1:], "0")
	if exponent == "" {
		exponent = "0"
	}
	return mantissa + "E" + sign + exponent, nil
}

// IsIntegral returns true if number literal has neither fraction nor exponent
func IsIntegral(literal string) bool {
	return !strings.ContainsAny(literal, ".eE")
}

// ValidNumber returns true if literal is a valid JSON number
func ValidNumber(literal string) bool {
	if literal == "" {
		return false
	}
	i := 0
	if literal[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(literal) && literal[i] >= '0' && literal[i] <= '9' {
			i++
		}
		return i - start
	}
	n := digits()
	if n == 0 || (n > 1 && literal[i-n] == '0') {
		return false
	}
	if i < len(literal) && literal[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(literal) && (literal[i] == 'e' || literal[i] == 'E') {
		i++
		if i < len(literal) && (literal[i] == '+' || literal[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(literal)
}

// ParseNumber parses number literal into int64 for integral literal, or float64 otherwise
func ParseNumber(literal string) (interface{}, error) {
	if IsIntegral(literal) {
		if v, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return v, nil
		}
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, errors.Newf("invalid number %q", literal)
	}
	return v, nil
}
