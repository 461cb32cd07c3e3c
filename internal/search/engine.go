package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Result is a ranked match.
type Result struct {
	Record Record  `json:"record"`
	Score  float64 `json:"relevance_score"`
}

// Engine scores queries with a fixed tier configuration. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine. A zero MaxResults falls back to the default.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	return &Engine{cfg: cfg}
}

// Config returns the tiers in use.
func (e *Engine) Config() Config {
	return e.cfg
}

// Search filters, matches and ranks pool against query, returning at most
// MaxResults results by descending score. Equal scores keep pool order.
// A blank query yields no results.
func (e *Engine) Search(query string, pool []Record, filters *Filters) []Result {
	q := e.fold(query)
	if q == "" {
		return []Result{}
	}
	words := strings.Fields(q)
	if filters.IsEmpty() {
		filters = nil
	}

	results := make([]Result, 0)
	for _, r := range pool {
		if !filters.allow(r, e.fold) {
			continue
		}
		if !e.matches(q, r) {
			continue
		}
		results = append(results, Result{
			Record: r,
			Score:  e.score(q, words, e.fold(r.Primary)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > e.cfg.MaxResults {
		results = results[:e.cfg.MaxResults]
	}
	return results
}

func (e *Engine) score(q string, words []string, primary string) float64 {
	switch {
	case primary == q:
		return e.cfg.Exact
	case strings.HasPrefix(primary, q):
		return e.cfg.Prefix
	case strings.Contains(primary, q):
		return e.cfg.Substring
	}

	if len(words) == 0 {
		return 0
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(primary, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(words)) * e.cfg.PartialWeight
}

// fold applies Unicode case folding and trims surrounding space. A Caser
// carries state, so each call gets its own.
func (e *Engine) fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

func (e *Engine) matches(q string, r Record) bool {
	for _, f := range r.Fields {
		if f != "" && strings.Contains(e.fold(f), q) {
			return true
		}
	}
	return false
}
