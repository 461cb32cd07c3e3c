package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pollux-motors/showroom/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
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
	specs       TEXT NOT NULL DEFAULT '{}',
	featured    INTEGER NOT NULL DEFAULT 0,
	color       TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
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
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_vehicles_category ON vehicles(category);
CREATE INDEX IF NOT EXISTS idx_vehicles_position ON vehicles(position);
CREATE INDEX IF NOT EXISTS idx_pages_position ON pages(position);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteVehicleColumns = `id, name, brand, model, category, year, price, description, specs, featured, color, image_url`

func (s *SQLiteStore) ListVehicles(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error) {
	query := `SELECT ` + sqliteVehicleColumns + ` FROM vehicles WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ? COLLATE NOCASE`
		args = append(args, filter.Category)
	}
	if filter.Featured {
		query += ` AND featured = 1`
	}
	query += ` ORDER BY position, id LIMIT ?`
	args = append(args, listLimit(filter.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list vehicles")
	}
	defer rows.Close() //nolint:errcheck
	return collectVehicles(rows)
}

func (s *SQLiteStore) GetVehicles(ctx context.Context, ids []model.ID) ([]model.Vehicle, error) {
	if len(ids) == 0 {
		return []model.Vehicle{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = string(id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteVehicleColumns+` FROM vehicles WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get vehicles")
	}
	defer rows.Close() //nolint:errcheck

	found, err := collectVehicles(rows)
	if err != nil {
		return nil, err
	}
	return orderByIDs(ids, found), nil
}

// UpsertVehicles inserts or replaces vehicles in one transaction. Catalog
// order follows the input slice.
func (s *SQLiteStore) UpsertVehicles(ctx context.Context, vehicles []model.Vehicle) (int, error) {
	if len(vehicles) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for i, v := range vehicles {
		if v.ID == "" {
			return 0, eris.Errorf("sqlite: vehicle %d has no id", i)
		}
		specsJSON, err := json.Marshal(v.Specs)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal specs for %s", v.ID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO vehicles (`+sqliteVehicleColumns+`, position, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				name = excluded.name, brand = excluded.brand, model = excluded.model,
				category = excluded.category, year = excluded.year, price = excluded.price,
				description = excluded.description, specs = excluded.specs,
				featured = excluded.featured, color = excluded.color,
				image_url = excluded.image_url, position = excluded.position,
				updated_at = excluded.updated_at`,
			string(v.ID), v.Name, v.Brand, v.Model, v.Category, v.Year, v.Price.Original,
			v.Description, string(specsJSON), boolToInt(v.Featured), v.Color, v.ImageURL, i, now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert vehicle %s", v.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit vehicles")
	}
	return len(vehicles), nil
}

func (s *SQLiteStore) ListPages(ctx context.Context) ([]model.ContentPage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, kind, url, author, date FROM pages ORDER BY position, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list pages")
	}
	defer rows.Close() //nolint:errcheck

	pages := make([]model.ContentPage, 0)
	for rows.Next() {
		var p model.ContentPage
		var id, kind string
		if err := rows.Scan(&id, &p.Title, &p.Description, &kind, &p.URL, &p.Author, &p.Date); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan page")
		}
		p.ID = model.ID(id)
		p.Kind = model.RecordKind(kind)
		pages = append(pages, p)
	}
	return pages, eris.Wrap(rows.Err(), "sqlite: iterate pages")
}

func (s *SQLiteStore) UpsertPages(ctx context.Context, pages []model.ContentPage) (int, error) {
	if len(pages) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for i, p := range pages {
		if p.ID == "" {
			return 0, eris.Errorf("sqlite: page %d has no id", i)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pages (id, title, description, kind, url, author, date, position, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				title = excluded.title, description = excluded.description,
				kind = excluded.kind, url = excluded.url, author = excluded.author,
				date = excluded.date, position = excluded.position,
				updated_at = excluded.updated_at`,
			string(p.ID), p.Title, p.Description, string(pageKind(p)), p.URL, p.Author, p.Date, i, now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert page %s", p.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit pages")
	}
	return len(pages), nil
}

type scannable interface {
	Scan(dest ...any) error
}

type rowIterator interface {
	scannable
	Next() bool
	Err() error
}

func collectVehicles(rows rowIterator) ([]model.Vehicle, error) {
	vehicles := make([]model.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, eris.Wrap(rows.Err(), "catalog: iterate vehicles")
}

func scanVehicle(row scannable) (model.Vehicle, error) {
	var v model.Vehicle
	var id, price, specsJSON string
	var featured int
	err := row.Scan(&id, &v.Name, &v.Brand, &v.Model, &v.Category, &v.Year, &price,
		&v.Description, &specsJSON, &featured, &v.Color, &v.ImageURL)
	if err != nil {
		return v, eris.Wrap(err, "catalog: scan vehicle")
	}
	v.ID = model.ID(id)
	v.Featured = featured != 0
	if price != "" {
		v.Price = model.ParseMeasure(price)
	}
	if specsJSON != "" {
		if err := json.Unmarshal([]byte(specsJSON), &v.Specs); err != nil {
			return v, eris.Wrapf(err, "catalog: unmarshal specs for %s", id)
		}
	}
	return v, nil
}

func pageKind(p model.ContentPage) model.RecordKind {
	if p.Kind == "" {
		return model.KindPage
	}
	return p.Kind
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
