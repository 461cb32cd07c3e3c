package search

import (
	"github.com/pollux-motors/showroom/internal/model"
)

// Filters narrows the pool before scoring. Nil bounds and empty lists are
// inactive. Price, year and brand apply to car records only.
type Filters struct {
	Kinds    []model.RecordKind `json:"kinds,omitempty"`
	PriceMin *float64           `json:"price_min,omitempty"`
	PriceMax *float64           `json:"price_max,omitempty"`
	YearMin  *int               `json:"year_min,omitempty"`
	YearMax  *int               `json:"year_max,omitempty"`
	Brands   []string           `json:"brands,omitempty"`
}

// IsEmpty reports whether no filter is active.
func (f *Filters) IsEmpty() bool {
	return f == nil || (len(f.Kinds) == 0 && f.PriceMin == nil && f.PriceMax == nil &&
		f.YearMin == nil && f.YearMax == nil && len(f.Brands) == 0)
}

// allow reports whether r survives every active filter. fold must be the
// same normalizer used for the query.
func (f *Filters) allow(r Record, fold func(string) string) bool {
	if f == nil {
		return true
	}

	if len(f.Kinds) > 0 && !containsKind(f.Kinds, r.Kind) {
		return false
	}
	if r.Kind != model.KindCar {
		return true
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		price, ok := model.ParseDigits(r.Metadata.Price)
		if !ok || !inRange(price, f.PriceMin, f.PriceMax) {
			return false
		}
	}

	if f.YearMin != nil || f.YearMax != nil {
		year, ok := model.ParseDigits(r.Metadata.Year)
		if !ok || !inRange(year, intPtrToFloat(f.YearMin), intPtrToFloat(f.YearMax)) {
			return false
		}
	}

	if len(f.Brands) > 0 {
		brand := fold(r.Metadata.Brand)
		if brand == "" {
			return false
		}
		found := false
		for _, b := range f.Brands {
			if fold(b) == brand {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func containsKind(kinds []model.RecordKind, k model.RecordKind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func inRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func intPtrToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
