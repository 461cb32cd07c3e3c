// Package search ranks free-text queries against a mixed pool of vehicles and
// static site content.
package search

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pollux-motors/showroom/internal/config"
)

// Config holds the relevance tiers. Scores must stay within [0, 1] and be
// ordered exact >= prefix >= substring >= partial.
type Config struct {
	Exact         float64
	Prefix        float64
	Substring     float64
	PartialWeight float64
	MaxResults    int
}

// DefaultConfig returns the showroom's stock tiers.
func DefaultConfig() Config {
	return Config{
		Exact:         1.0,
		Prefix:        0.9,
		Substring:     0.7,
		PartialWeight: 0.5,
		MaxResults:    10,
	}
}

// ConfigFrom maps application configuration onto engine tiers.
func ConfigFrom(c config.SearchConfig) Config {
	return Config{
		Exact:         c.ExactScore,
		Prefix:        c.PrefixScore,
		Substring:     c.SubstringScore,
		PartialWeight: c.PartialWeight,
		MaxResults:    c.MaxResults,
	}
}

// ValidateConfig checks that tiers are internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	tiers := []struct {
		name  string
		value float64
	}{
		{"exact_score", c.Exact},
		{"prefix_score", c.Prefix},
		{"substring_score", c.Substring},
		{"partial_weight", c.PartialWeight},
	}
	for _, tier := range tiers {
		if tier.value < 0 || tier.value > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1 (got %.2f)", tier.name, tier.value))
		}
	}

	if c.Exact < c.Prefix || c.Prefix < c.Substring || c.Substring < c.PartialWeight {
		errs = append(errs, "tiers must satisfy exact >= prefix >= substring >= partial_weight")
	}
	if c.MaxResults <= 0 {
		errs = append(errs, "max_results must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("search: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
