package compare

import (
	"github.com/pollux-motors/showroom/internal/model"
)

// Entity is anything that can expose display values by attribute key.
type Entity interface {
	Attribute(key string) (model.Measure, bool)
}

// Result is the highlighting of one entity for one attribute.
type Result struct {
	Value       string `json:"value"`
	IsBest      bool   `json:"is_best"`
	IsWorst     bool   `json:"is_worst"`
	HasVariance bool   `json:"has_variance"`
}

// Compare classifies every (attribute, entity) pair. Results are keyed by
// attribute key and ordered like entities. It never fails: malformed or
// missing values only suppress markers.
func Compare[E Entity](entities []E, attributes []Attribute) map[string][]Result {
	out := make(map[string][]Result, len(attributes))
	for _, attr := range attributes {
		out[attr.Key] = compareAttribute(entities, attr)
	}
	return out
}

func compareAttribute[E Entity](entities []E, attr Attribute) []Result {
	results := make([]Result, len(entities))
	values := make([]model.Measure, len(entities))
	present := make([]bool, len(entities))
	for i, e := range entities {
		values[i], present[i] = e.Attribute(attr.Key)
		results[i].Value = values[i].Original
	}

	variance := hasVariance(values, present)
	for i := range results {
		results[i].HasVariance = variance
	}

	magnitudes, ok := parseAll(values, present, attr.Parse)
	if !ok || len(magnitudes) == 0 {
		return results
	}

	lo, hi := magnitudes[0], magnitudes[0]
	for _, v := range magnitudes[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	best, worst := hi, lo
	if attr.Polarity == LowerIsBetter {
		best, worst = lo, hi
	}

	// Head-to-head views only ever show the winner.
	markWorst := len(entities) > 2 && best != worst
	for i, v := range magnitudes {
		results[i].IsBest = v == best
		results[i].IsWorst = markWorst && v == worst
	}
	return results
}

func hasVariance(values []model.Measure, present []bool) bool {
	if len(values) <= 1 {
		return false
	}
	for i := 1; i < len(values); i++ {
		if present[i] != present[0] || values[i].Original != values[0].Original {
			return true
		}
	}
	return false
}

// parseAll returns every magnitude, or false if any entity is absent or
// unparsable.
func parseAll(values []model.Measure, present []bool, rule ParseRule) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, m := range values {
		if !present[i] {
			return nil, false
		}
		v, ok := rule.Parse(m)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
