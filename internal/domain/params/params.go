// Package params turns loosely typed slot values into domain values.
//
// Every function here is total: missing, malformed or oddly typed input maps
// to a documented default and nothing ever panics or returns an error.
package params

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Display defaults, applied only where a value must be shown to the user.
const (
	DefaultPractice = "Consulting"
	DefaultLocation = "Bengaluru"
)

var (
	leadingYear   = regexp.MustCompile(`^(\d{4})`)
	leadingNumber = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseYear returns the integer formed by the leading four digits of v, or
// nil when v is empty, zero, non-scalar, or does not start with four digits.
// "2025-06-01T00:00:00+05:30" and 2025 both yield 2025.
func ParseYear(v any) *int {
	s := Text(v)
	if s == "" || s == "0" {
		return nil
	}
	m := leadingYear.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &year
}

// ParseExperience returns years of experience and whether v was usable.
// Numbers are taken as is; strings are read from their leading numeric
// prefix ("2.5 years" is 2.5); a missing value is a valid 0. Negative values
// clamp to 0. NaN, infinities and anything else report ok=false.
func ParseExperience(v any) (years float64, ok bool) {
	if v == nil {
		return 0, true
	}
	if n, isNum := number(v); isNum {
		return clampExperience(n)
	}
	s, isStr := v.(string)
	if !isStr {
		return 0, false
	}
	if strings.TrimSpace(s) == "" {
		return 0, true
	}
	prefix := leadingNumber.FindString(s)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
	if err != nil {
		return 0, false
	}
	return clampExperience(n)
}

func clampExperience(n float64) (float64, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return math.Max(0, n), true
}

// Text renders a scalar slot value for display. Strings are trimmed, numbers
// are printed without exponent or trailing zeros, everything else is "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	if n, ok := number(v); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return ""
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// OrDefault returns s trimmed, or def when s is blank.
func OrDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// number widens the numeric types a JSON decoder or a test may produce.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
