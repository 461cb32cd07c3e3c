// Package model holds the catalog value types shared by the showroom engines.
package model

import (
	"encoding/json"
	"strings"
)

// ID identifies a catalog item. The hosted catalog emits integer keys while
// seed files often use slugs, so both decode into the same string form.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Specs bundles the performance figures shown on a vehicle card.
type Specs struct {
	Speed        Measure `json:"speed"`
	Acceleration Measure `json:"acceleration"`
	Power        Measure `json:"power"`
	Range        Measure `json:"range"`
}

// Vehicle is a single car in the dealership catalog.
type Vehicle struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Model       string  `json:"model,omitempty"`
	Category    string  `json:"category"`
	Year        string  `json:"year"`
	Price       Measure `json:"price"`
	Description string  `json:"description"`
	Specs       Specs   `json:"specs"`
	Featured    bool    `json:"featured,omitempty"`
	Color       string  `json:"color,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Attribute resolves a display value by key. One level of nesting is
// supported for the specs bundle ("specs.speed"). Empty values report false.
func (v Vehicle) Attribute(key string) (Measure, bool) {
	var m Measure
	switch strings.ToLower(key) {
	case "id":
		m = ParseMeasure(string(v.ID))
	case "name":
		m = ParseMeasure(v.Name)
	case "brand":
		m = ParseMeasure(v.Brand)
	case "model":
		m = ParseMeasure(v.Model)
	case "category":
		m = ParseMeasure(v.Category)
	case "year":
		m = ParseMeasure(v.Year)
	case "price":
		m = v.Price
	case "description":
		m = ParseMeasure(v.Description)
	case "color":
		m = ParseMeasure(v.Color)
	case "specs.speed", "speed":
		m = v.Specs.Speed
	case "specs.acceleration", "acceleration":
		m = v.Specs.Acceleration
	case "specs.power", "power":
		m = v.Specs.Power
	case "specs.range", "range":
		m = v.Specs.Range
	default:
		return Measure{}, false
	}
	if m.IsZero() {
		return Measure{}, false
	}
	return m, true
}

// DisplayBrand returns the brand, falling back to the model line.
func (v Vehicle) DisplayBrand() string {
	if v.Brand != "" {
		return v.Brand
	}
	return v.Model
}
