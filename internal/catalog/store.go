// Package catalog persists vehicles and content pages and loads seed files.
package catalog

import (
	"context"

	"github.com/pollux-motors/showroom/internal/model"
)

// VehicleFilter specifies criteria for listing vehicles.
type VehicleFilter struct {
	Category string `json:"category,omitempty"`
	Featured bool   `json:"featured,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Store defines the persistence interface for the showroom catalog.
type Store interface {
	// Vehicles
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error)
	// GetVehicles returns the vehicles in the order of ids. Unknown ids are
	// skipped.
	GetVehicles(ctx context.Context, ids []model.ID) ([]model.Vehicle, error)
	UpsertVehicles(ctx context.Context, vehicles []model.Vehicle) (int, error)

	// Pages
	ListPages(ctx context.Context) ([]model.ContentPage, error)
	UpsertPages(ctx context.Context, pages []model.ContentPage) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 500

func listLimit(n int) int {
	if n <= 0 {
		return defaultListLimit
	}
	return n
}

// orderByIDs arranges vehicles to follow ids, dropping duplicates and ids
// with no match.
func orderByIDs(ids []model.ID, found []model.Vehicle) []model.Vehicle {
	byID := make(map[model.ID]model.Vehicle, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	out := make([]model.Vehicle, 0, len(ids))
	seen := make(map[model.ID]bool, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, v)
	}
	return out
}
