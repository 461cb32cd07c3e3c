package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pollux-motors/showroom/internal/catalog"
	"github.com/pollux-motors/showroom/internal/compare"
	"github.com/pollux-motors/showroom/internal/search"
	"github.com/pollux-motors/showroom/internal/showroom"
)

func initStore(ctx context.Context) (catalog.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "showroom.db"
		}
		return catalog.NewSQLite(dsn)
	case "postgres":
		return catalog.NewPostgres(ctx, cfg.Store.DatabaseURL, &catalog.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initService validates config for mode, opens and migrates the store, and
// builds the showroom service. Callers close the returned store.
func initService(ctx context.Context, mode string) (*showroom.Service, catalog.Store, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, nil, err
	}

	attrs, err := compare.AttributesFromConfig(cfg.Compare)
	if err != nil {
		return nil, nil, err
	}
	searchCfg := search.ConfigFrom(cfg.Search)
	if err := search.ValidateConfig(searchCfg); err != nil {
		return nil, nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, nil, err
	}

	engine := search.NewEngine(searchCfg)
	tiers := engine.Config()
	zap.L().Debug("search engine ready",
		zap.Float64("exact", tiers.Exact),
		zap.Float64("prefix", tiers.Prefix),
		zap.Float64("substring", tiers.Substring),
		zap.Float64("partial_weight", tiers.PartialWeight),
		zap.Int("max_results", tiers.MaxResults),
		zap.Int("attributes", len(attrs)),
	)

	return showroom.New(st, attrs, engine), st, nil
}
