package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Measure is a display value such as "320 km/h" or "AED 850,000" parsed once
// into its numeric magnitude. The zero Measure is absent.
type Measure struct {
	Original  string  `json:"original"`
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit,omitempty"`
	Valid     bool    `json:"valid"`
}

// ParseMeasure keeps only digits, '.' and '-' from s and parses the rest as a
// float. Valid is false when nothing finite remains.
func ParseMeasure(s string) Measure {
	m := Measure{Original: s, Unit: unitOf(s)}
	v, ok := ParseNumeric(s)
	if ok {
		m.Magnitude = v
		m.Valid = true
	}
	return m
}

// ParseNumeric applies the strip-and-parse rule to s.
func ParseNumeric(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	return parseFinite(cleaned)
}

// ParseDigits keeps only ASCII digits, so "AED 850,000" yields 850000.
func ParseDigits(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	return parseFinite(cleaned)
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// unitOf returns the non-numeric words of s ("km/h", "AED", "s").
func unitOf(s string) string {
	var words []string
	for _, f := range strings.Fields(s) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsDigit(r) || r == '.' || r == ',' || r == '-'
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// IsZero reports whether the measure is absent.
func (m Measure) IsZero() bool {
	return m.Original == ""
}

func (m Measure) String() string {
	return m.Original
}

// MarshalJSON writes the original display string.
func (m Measure) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(m.Original)
}

// UnmarshalJSON accepts a display string, a bare number, or null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if nerr := json.Unmarshal(data, &n); nerr != nil {
			return err
		}
		s = n.String()
	}
	*m = ParseMeasure(s)
	return nil
}
