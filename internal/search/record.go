package search

import (
	"strings"

	"github.com/pollux-motors/showroom/internal/model"
)

// Metadata carries kind-dependent details. All fields are optional.
type Metadata struct {
	Price  string `json:"price,omitempty"`
	Year   string `json:"year,omitempty"`
	Brand  string `json:"brand,omitempty"`
	Author string `json:"author,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Record is one searchable item. Primary is the field scored for relevance;
// Fields are the texts the query must appear in for the record to match.
type Record struct {
	ID          model.ID         `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Kind        model.RecordKind `json:"category"`
	URL         string           `json:"url"`
	Metadata    Metadata         `json:"metadata"`

	Primary string   `json:"-"`
	Fields  []string `json:"-"`
}

// FromVehicle adapts a catalog vehicle. The vehicle name is the primary
// field; name, category, model, description and year are matchable.
func FromVehicle(v model.Vehicle) Record {
	return Record{
		ID:          v.ID,
		Title:       v.Name,
		Description: v.Description,
		Kind:        model.KindCar,
		URL:         "/cars/" + string(v.ID),
		Metadata: Metadata{
			Price: v.Price.Original,
			Year:  v.Year,
			Brand: v.DisplayBrand(),
		},
		Primary: v.Name,
		Fields:  []string{v.Name, v.Category, v.Model, v.Description, v.Year},
	}
}

// FromPage adapts a static content page. Title and description together form
// the primary field.
func FromPage(p model.ContentPage) Record {
	kind := p.Kind
	if kind == "" {
		kind = model.KindPage
	}
	return Record{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Kind:        kind,
		URL:         p.URL,
		Metadata: Metadata{
			Author: p.Author,
			Date:   p.Date,
		},
		Primary: strings.TrimSpace(p.Title + " " + p.Description),
		Fields:  []string{p.Title, p.Description, string(kind)},
	}
}

// BuildPool adapts vehicles followed by pages, preserving input order.
func BuildPool(vehicles []model.Vehicle, pages []model.ContentPage) []Record {
	pool := make([]Record, 0, len(vehicles)+len(pages))
	for _, v := range vehicles {
		pool = append(pool, FromVehicle(v))
	}
	for _, p := range pages {
		pool = append(pool, FromPage(p))
	}
	return pool
}
