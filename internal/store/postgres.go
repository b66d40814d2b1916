package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the forecast cache and saved places in PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	maxAge time.Duration
}

// NewPostgresStore creates a store on pool. Spans that ended more than
// maxAge ago are removed by Prune; maxAge <= 0 keeps everything.
func NewPostgresStore(pool *pgxpool.Pool, maxAge time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, maxAge: maxAge}
}

// InitSchema creates the tables if they do not exist.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS places(
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			time_zone TEXT NOT NULL DEFAULT '',
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS forecast_meta(
			place_id TEXT PRIMARY KEY,
			provider TEXT NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS forecast_spans(
			place_id TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			temperature DOUBLE PRECISION,
			temperature_max DOUBLE PRECISION,
			temperature_min DOUBLE PRECISION,
			precipitation DOUBLE PRECISION,
			wind_speed DOUBLE PRECISION,
			wind_from_direction DOUBLE PRECISION,
			humidity DOUBLE PRECISION,
			pressure DOUBLE PRECISION,
			symbol_code TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (place_id, start_time)
		)`,
		`CREATE INDEX IF NOT EXISTS ix_forecast_spans_end
		 ON forecast_spans(end_time)`,
	}

	for _, q := range queries {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}

var spanColumns = []string{
	"place_id", "start_time", "end_time",
	"temperature", "temperature_max", "temperature_min",
	"precipitation", "wind_speed", "wind_from_direction",
	"humidity", "pressure", "symbol_code",
}

// SaveForecast replaces the cached forecast of meta.PlaceID in one
// transaction.
func (s *PostgresStore) SaveForecast(ctx context.Context, meta weather.Meta, spans weather.TimeSpans) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO forecast_meta(place_id, provider, fetched_at, expires_at)
		VALUES($1,$2,$3,$4)
		ON CONFLICT (place_id) DO UPDATE
		SET provider=EXCLUDED.provider, fetched_at=EXCLUDED.fetched_at,
		    expires_at=EXCLUDED.expires_at`,
		meta.PlaceID, meta.Provider, meta.FetchedAt, meta.ExpiresAt)
	if err != nil {
		return fmt.Errorf("saving forecast meta: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM forecast_spans WHERE place_id = $1", meta.PlaceID); err != nil {
		return fmt.Errorf("clearing forecast spans: %w", err)
	}

	rows := make([][]any, 0, len(spans))
	for _, span := range spans {
		rows = append(rows, []any{
			meta.PlaceID, span.Start, span.End,
			span.Temperature, span.TemperatureMax, span.TemperatureMin,
			span.Precipitation, span.WindSpeed, span.WindFromDirection,
			span.Humidity, span.Pressure, string(span.SymbolCode),
		})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"forecast_spans"}, spanColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("saving forecast spans: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetForecast(ctx context.Context, placeID string) (weather.Meta, weather.TimeSpans, error) {
	meta := weather.Meta{PlaceID: placeID}
	err := s.pool.QueryRow(ctx,
		"SELECT provider, fetched_at, expires_at FROM forecast_meta WHERE place_id = $1",
		placeID).Scan(&meta.Provider, &meta.FetchedAt, &meta.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return weather.Meta{}, nil, ErrNotFound
	}
	if err != nil {
		return weather.Meta{}, nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT start_time, end_time, temperature, temperature_max, temperature_min,
		       precipitation, wind_speed, wind_from_direction, humidity, pressure, symbol_code
		FROM forecast_spans WHERE place_id = $1 ORDER BY start_time`, placeID)
	if err != nil {
		return weather.Meta{}, nil, err
	}
	defer rows.Close()

	var spans weather.TimeSpans
	for rows.Next() {
		span := weather.TimeSpan{PlaceID: placeID}
		var code string
		if err := rows.Scan(&span.Start, &span.End, &span.Temperature, &span.TemperatureMax, &span.TemperatureMin,
			&span.Precipitation, &span.WindSpeed, &span.WindFromDirection, &span.Humidity, &span.Pressure, &code); err != nil {
			return weather.Meta{}, nil, err
		}
		span.SymbolCode = weather.SymbolCode(code)
		spans = append(spans, span)
	}
	if err := rows.Err(); err != nil {
		return weather.Meta{}, nil, err
	}
	return meta, spans, nil
}

// Prune deletes spans past the age limit and forecasts left without spans.
func (s *PostgresStore) Prune(ctx context.Context) (int, error) {
	if s.maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-s.maxAge)
	if _, err := s.pool.Exec(ctx, "DELETE FROM forecast_spans WHERE end_time < $1", cutoff); err != nil {
		return 0, err
	}
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM forecast_meta m
		WHERE NOT EXISTS (SELECT 1 FROM forecast_spans s WHERE s.place_id = m.place_id)`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) SavePlace(ctx context.Context, place weather.Place) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO places(id, name, latitude, longitude, time_zone)
		VALUES($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE
		SET name=EXCLUDED.name, latitude=EXCLUDED.latitude,
		    longitude=EXCLUDED.longitude, time_zone=EXCLUDED.time_zone`,
		place.ID, place.Name, place.Latitude, place.Longitude, place.TimeZone)
	return err
}

func (s *PostgresStore) GetPlace(ctx context.Context, id string) (weather.Place, error) {
	var p weather.Place
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, latitude, longitude, time_zone FROM places WHERE id = $1",
		id).Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.TimeZone)
	if errors.Is(err, pgx.ErrNoRows) {
		return weather.Place{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) ListPlaces(ctx context.Context) ([]weather.Place, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, latitude, longitude, time_zone FROM places ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []weather.Place
	for rows.Next() {
		var p weather.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.TimeZone); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// DeletePlace forgets a saved place together with its cached forecast.
func (s *PostgresStore) DeletePlace(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM places WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx, "DELETE FROM forecast_spans WHERE place_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM forecast_meta WHERE place_id = $1", id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
