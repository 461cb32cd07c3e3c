// Package compare computes best/worst highlighting across a set of compared
// catalog entities.
package compare

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pollux-motors/showroom/internal/config"
	"github.com/pollux-motors/showroom/internal/model"
)

// Polarity says which end of the numeric range wins.
type Polarity string

const (
	HigherIsBetter Polarity = "higher-is-better"
	LowerIsBetter  Polarity = "lower-is-better"
)

// ParseRule selects how a display string becomes a magnitude.
type ParseRule string

const (
	// ParseNumeric strips everything but digits, '.' and '-'.
	ParseNumeric ParseRule = "numeric"
	// ParseDigits keeps digits only, dropping any decimal point. Opt-in for
	// configured columns whose values are whole numbers with odd separators;
	// the default columns never use it.
	ParseDigits ParseRule = "digits"
	// ParseText never yields a magnitude; only variance is reported.
	ParseText ParseRule = "text"
)

// Parse extracts the magnitude of m under the rule.
func (r ParseRule) Parse(m model.Measure) (float64, bool) {
	switch r {
	case ParseText:
		return 0, false
	case ParseDigits:
		return model.ParseDigits(m.Original)
	default:
		// Measures arrive pre-parsed with the numeric rule.
		return m.Magnitude, m.Valid
	}
}

// Attribute describes how to read and rank one column of a comparison.
type Attribute struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Polarity Polarity  `json:"polarity"`
	Parse    ParseRule `json:"parse"`
}

// DefaultAttributes returns the columns of the showroom comparison table.
func DefaultAttributes() []Attribute {
	return []Attribute{
		{Key: "price", Label: "Price", Polarity: LowerIsBetter, Parse: ParseNumeric},
		{Key: "year", Label: "Year", Polarity: HigherIsBetter, Parse: ParseNumeric},
		{Key: "specs.speed", Label: "Top Speed", Polarity: HigherIsBetter, Parse: ParseNumeric},
		{Key: "specs.acceleration", Label: "0-100 km/h", Polarity: LowerIsBetter, Parse: ParseNumeric},
		{Key: "specs.power", Label: "Power", Polarity: HigherIsBetter, Parse: ParseNumeric},
		{Key: "specs.range", Label: "Range", Polarity: HigherIsBetter, Parse: ParseNumeric},
		{Key: "category", Label: "Category", Polarity: HigherIsBetter, Parse: ParseText},
	}
}

// AttributesFromConfig builds descriptors from configuration, falling back
// to DefaultAttributes when none are configured.
func AttributesFromConfig(cfg config.CompareConfig) ([]Attribute, error) {
	if len(cfg.Attributes) == 0 {
		return DefaultAttributes(), nil
	}

	attrs := make([]Attribute, 0, len(cfg.Attributes))
	var errs []string
	seen := make(map[string]bool, len(cfg.Attributes))
	for i, ac := range cfg.Attributes {
		a := Attribute{
			Key:      strings.TrimSpace(ac.Key),
			Label:    ac.Label,
			Polarity: Polarity(ac.Polarity),
			Parse:    ParseRule(ac.Parse),
		}
		if a.Polarity == "" {
			a.Polarity = HigherIsBetter
		}
		if a.Parse == "" {
			a.Parse = ParseNumeric
		}
		if a.Label == "" {
			a.Label = a.Key
		}

		if a.Key == "" {
			errs = append(errs, fmt.Sprintf("attributes[%d]: key is required", i))
		} else if seen[a.Key] {
			errs = append(errs, fmt.Sprintf("attributes[%d]: duplicate key %q", i, a.Key))
		}
		seen[a.Key] = true
		if a.Polarity != HigherIsBetter && a.Polarity != LowerIsBetter {
			errs = append(errs, fmt.Sprintf("attributes[%d]: unknown polarity %q", i, a.Polarity))
		}
		switch a.Parse {
		case ParseNumeric, ParseDigits, ParseText:
		default:
			errs = append(errs, fmt.Sprintf("attributes[%d]: unknown parse rule %q", i, a.Parse))
		}
		attrs = append(attrs, a)
	}

	if len(errs) > 0 {
		return nil, eris.Errorf("compare: invalid attributes: %s", strings.Join(errs, "; "))
	}
	return attrs, nil
}
