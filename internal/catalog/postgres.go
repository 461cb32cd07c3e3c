package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pollux-motors/showroom/internal/db"
	"github.com/pollux-motors/showroom/internal/model"
	"github.com/pollux-motors/showroom/internal/resilience"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("postgres", "ping")
	if err := resilience.Do(ctx, retry, pool.Ping); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS vehicles (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	brand       TEXT NOT NULL DEFAULT '',
	model       TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	year        TEXT NOT NULL DEFAULT '',
	price       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	specs       JSONB NOT NULL DEFAULT '{}',
	featured    BOOLEAN NOT NULL DEFAULT false,
	color       TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pages (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL DEFAULT 'page',
	url         TEXT NOT NULL DEFAULT '',
	author      TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_vehicles_category ON vehicles(lower(category));
CREATE INDEX IF NOT EXISTS idx_vehicles_position ON vehicles(position);
CREATE INDEX IF NOT EXISTS idx_pages_position ON pages(position);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var (
	vehicleColumns = []string{"id", "name", "brand", "model", "category", "year", "price",
		"description", "specs", "featured", "color", "image_url", "position", "updated_at"}
	pageColumns = []string{"id", "title", "description", "kind", "url", "author", "date",
		"position", "updated_at"}
)

const pgVehicleSelect = `SELECT id, name, brand, model, category, year, price, description, specs, featured, color, image_url FROM vehicles`

func (s *PostgresStore) ListVehicles(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error) {
	query := pgVehicleSelect + ` WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Category != "" {
		query += fmt.Sprintf(` AND lower(category) = lower($%d)`, argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Featured {
		query += ` AND featured`
	}
	query += fmt.Sprintf(` ORDER BY position, id LIMIT $%d`, argIdx)
	args = append(args, listLimit(filter.Limit))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list vehicles")
	}
	defer rows.Close()

	vehicles := make([]model.Vehicle, 0)
	for rows.Next() {
		v, err := scanPgVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, eris.Wrap(rows.Err(), "postgres: iterate vehicles")
}

func (s *PostgresStore) GetVehicles(ctx context.Context, ids []model.ID) ([]model.Vehicle, error) {
	if len(ids) == 0 {
		return []model.Vehicle{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = string(id)
	}

	rows, err := s.pool.Query(ctx, pgVehicleSelect+` WHERE id = ANY($1)`, keys)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get vehicles")
	}
	defer rows.Close()

	var found []model.Vehicle
	for rows.Next() {
		v, err := scanPgVehicle(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, v)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate vehicles")
	}
	return orderByIDs(ids, found), nil
}

func (s *PostgresStore) UpsertVehicles(ctx context.Context, vehicles []model.Vehicle) (int, error) {
	if len(vehicles) == 0 {
		return 0, nil
	}
	stmt, err := db.UpsertSQL(db.UpsertConfig{Table: "vehicles", Columns: vehicleColumns, ConflictKeys: []string{"id"}})
	if err != nil {
		return 0, eris.Wrap(err, "postgres: build vehicle upsert")
	}

	now := time.Now().UTC()
	rows := make([][]any, len(vehicles))
	for i, v := range vehicles {
		if v.ID == "" {
			return 0, eris.Errorf("postgres: vehicle %d has no id", i)
		}
		specsJSON, err := json.Marshal(v.Specs)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal specs for %s", v.ID)
		}
		rows[i] = []any{string(v.ID), v.Name, v.Brand, v.Model, v.Category, v.Year, v.Price.Original,
			v.Description, specsJSON, v.Featured, v.Color, v.ImageURL, i, now}
	}
	return s.execBatch(ctx, "vehicles", stmt, rows)
}

func (s *PostgresStore) ListPages(ctx context.Context) ([]model.ContentPage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, kind, url, author, date FROM pages ORDER BY position, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list pages")
	}
	defer rows.Close()

	pages := make([]model.ContentPage, 0)
	for rows.Next() {
		var p model.ContentPage
		var id, kind string
		if err := rows.Scan(&id, &p.Title, &p.Description, &kind, &p.URL, &p.Author, &p.Date); err != nil {
			return nil, eris.Wrap(err, "postgres: scan page")
		}
		p.ID = model.ID(id)
		p.Kind = model.RecordKind(kind)
		pages = append(pages, p)
	}
	return pages, eris.Wrap(rows.Err(), "postgres: iterate pages")
}

func (s *PostgresStore) UpsertPages(ctx context.Context, pages []model.ContentPage) (int, error) {
	if len(pages) == 0 {
		return 0, nil
	}
	stmt, err := db.UpsertSQL(db.UpsertConfig{Table: "pages", Columns: pageColumns, ConflictKeys: []string{"id"}})
	if err != nil {
		return 0, eris.Wrap(err, "postgres: build page upsert")
	}

	now := time.Now().UTC()
	rows := make([][]any, len(pages))
	for i, p := range pages {
		if p.ID == "" {
			return 0, eris.Errorf("postgres: page %d has no id", i)
		}
		rows[i] = []any{string(p.ID), p.Title, p.Description, string(pageKind(p)), p.URL, p.Author, p.Date, i, now}
	}
	return s.execBatch(ctx, "pages", stmt, rows)
}

// execBatch runs stmt once per row inside a single transaction.
func (s *PostgresStore) execBatch(ctx context.Context, table, stmt string, rows [][]any) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: begin tx for %s", table)
	}

	for _, args := range rows {
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			_ = tx.Rollback(ctx)
			return 0, eris.Wrapf(err, "postgres: upsert %s %v", table, args[0])
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrapf(err, "postgres: commit %s", table)
	}
	return len(rows), nil
}

func scanPgVehicle(row scannable) (model.Vehicle, error) {
	var v model.Vehicle
	var id, price string
	var specsJSON []byte
	err := row.Scan(&id, &v.Name, &v.Brand, &v.Model, &v.Category, &v.Year, &price,
		&v.Description, &specsJSON, &v.Featured, &v.Color, &v.ImageURL)
	if err != nil {
		return v, eris.Wrap(err, "postgres: scan vehicle")
	}
	v.ID = model.ID(id)
	if price != "" {
		v.Price = model.ParseMeasure(price)
	}
	if len(specsJSON) > 0 {
		if err := json.Unmarshal(specsJSON, &v.Specs); err != nil {
			return v, eris.Wrapf(err, "postgres: unmarshal specs for %s", id)
		}
	}
	return v, nil
}
