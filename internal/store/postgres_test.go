package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/i474232898/prognoza/internal/weather"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newPostgresStore connects to PROGNOZA_TEST_DATABASE_URL or skips the test.
func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := os.Getenv("PROGNOZA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROGNOZA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := InitSchema(ctx, pool); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, table := range []string{"forecast_spans", "forecast_meta", "places"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clearing %s: %v", table, err)
		}
	}
	return NewPostgresStore(pool, 24*time.Hour)
}

func TestPostgresStoreForecast(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	if _, _, err := s.GetForecast(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now().UTC().Truncate(time.Hour)
	meta := weather.Meta{PlaceID: "1", Provider: "metnorway", FetchedAt: now, ExpiresAt: now.Add(time.Hour)}
	spans := spansFrom(now, 3)
	spans[1].SymbolCode = "rain"
	spans[2].Temperature = nil

	if err := s.SaveForecast(ctx, meta, spans); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotMeta, got, err := s.GetForecast(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMeta.Provider != "metnorway" || !gotMeta.ExpiresAt.Equal(meta.ExpiresAt) {
		t.Fatalf("unexpected meta: %+v", gotMeta)
	}
	if len(got) != 3 || got[1].SymbolCode != "rain" || got[2].Temperature != nil || *got[1].Temperature != 1 {
		t.Fatalf("unexpected spans: %+v", got)
	}

	if err := s.SaveForecast(ctx, meta, spans[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, got, _ := s.GetForecast(ctx, "1"); len(got) != 1 {
		t.Fatalf("expected save to replace spans, got %d", len(got))
	}
}

func TestPostgresStorePlaces(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	osijek := weather.Place{ID: "259515203", Name: "Osijek", Latitude: 45.5511, Longitude: 18.6939, TimeZone: "Europe/Zagreb"}
	if err := s.SavePlace(ctx, osijek); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.GetPlace(ctx, osijek.ID)
	if err != nil || got != osijek {
		t.Fatalf("expected %+v, got %+v (%v)", osijek, got, err)
	}
	list, err := s.ListPlaces(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one place, got %d (%v)", len(list), err)
	}
	if err := s.DeletePlace(ctx, osijek.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeletePlace(ctx, osijek.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
