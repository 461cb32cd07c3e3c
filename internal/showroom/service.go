// Package showroom ties the catalog store to the comparison and search
// engines.
package showroom

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pollux-motors/showroom/internal/catalog"
	"github.com/pollux-motors/showroom/internal/compare"
	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/search"
)

// searchPoolLimit bounds how many vehicles are loaded into one search pool.
const searchPoolLimit = 5000

// ErrNotFound is returned when a requested vehicle does not exist.
var ErrNotFound = eris.New("showroom: not found")

// Comparison is the side-by-side view of a set of vehicles.
type Comparison struct {
	Vehicles   []model.Vehicle             `json:"vehicles"`
	Attributes []compare.Attribute         `json:"attributes"`
	Results    map[string][]compare.Result `json:"results"`
	Missing    []model.ID                  `json:"missing,omitempty"`
}

// EntityComparison is the view of ad hoc entities supplied by a caller.
type EntityComparison struct {
	Entities   []compare.Fields            `json:"entities"`
	Attributes []compare.Attribute         `json:"attributes"`
	Results    map[string][]compare.Result `json:"results"`
}

// Service answers catalog, comparison and search requests.
type Service struct {
	store  catalog.Store
	attrs  []compare.Attribute
	engine *search.Engine
}

// New creates a Service. A nil attribute list uses the default comparison
// attributes.
func New(store catalog.Store, attrs []compare.Attribute, engine *search.Engine) *Service {
	if attrs == nil {
		attrs = compare.DefaultAttributes()
	}
	if engine == nil {
		engine = search.NewEngine(search.DefaultConfig())
	}
	return &Service{store: store, attrs: attrs, engine: engine}
}

// Attributes returns the configured comparison attributes.
func (s *Service) Attributes() []compare.Attribute {
	return s.attrs
}

// Vehicles lists catalog vehicles.
func (s *Service) Vehicles(ctx context.Context, filter catalog.VehicleFilter) ([]model.Vehicle, error) {
	return s.store.ListVehicles(ctx, filter)
}

// Vehicle returns a single vehicle or ErrNotFound.
func (s *Service) Vehicle(ctx context.Context, id model.ID) (*model.Vehicle, error) {
	found, err := s.store.GetVehicles(ctx, []model.ID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "vehicle %s", id)
	}
	return &found[0], nil
}

// Compare loads the vehicles named by ids, in that order, and compares them
// on the configured attributes. Unknown ids are listed in Missing.
func (s *Service) Compare(ctx context.Context, ids []model.ID) (*Comparison, error) {
	if len(ids) == 0 {
		return nil, eris.New("showroom: compare needs at least one vehicle id")
	}

	vehicles, err := s.store.GetVehicles(ctx, ids)
	if err != nil {
		return nil, eris.Wrap(err, "showroom: load vehicles for comparison")
	}

	found := make(map[model.ID]bool, len(vehicles))
	for _, v := range vehicles {
		found[v.ID] = true
	}
	var missing []model.ID
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
			found[id] = true
		}
	}
	if len(missing) > 0 {
		zap.L().Warn("showroom: compare skipped unknown vehicles",
			zap.Int("requested", len(ids)),
			zap.Int("missing", len(missing)),
		)
	}

	return &Comparison{
		Vehicles:   vehicles,
		Attributes: s.attrs,
		Results:    compare.Compare(vehicles, s.attrs),
		Missing:    missing,
	}, nil
}

// CompareEntities compares caller-supplied entities on the configured
// attributes without touching the store.
func (s *Service) CompareEntities(entities []compare.Fields) *EntityComparison {
	return &EntityComparison{
		Entities:   entities,
		Attributes: s.attrs,
		Results:    compare.Compare(entities, s.attrs),
	}
}

// Search ranks catalog vehicles and content pages against query. Pages come
// from the store, or the built-in set when none have been imported.
func (s *Service) Search(ctx context.Context, query string, filters *search.Filters) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return []search.Result{}, nil
	}

	var (
		vehicles []model.Vehicle
		pages    []model.ContentPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vehicles, err = s.store.ListVehicles(gctx, catalog.VehicleFilter{Limit: searchPoolLimit})
		return eris.Wrap(err, "showroom: load vehicles for search")
	})
	g.Go(func() error {
		var err error
		pages, err = s.store.ListPages(gctx)
		return eris.Wrap(err, "showroom: load pages for search")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		pages = catalog.DefaultPages()
	}

	results := s.engine.Search(query, search.BuildPool(vehicles, pages), filters)
	zap.L().Debug("showroom: search complete",
		zap.String("query", query),
		zap.Int("pool", len(vehicles)+len(pages)),
		zap.Bool("filtered", !filters.IsEmpty()),
		zap.Int("results", len(results)),
	)
	return results, nil
}
