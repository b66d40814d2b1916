package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/prognoza/internal/weather"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent refreshes so providers are not flooded.
const maxParallel = 4

// Refresher refreshes the cached forecast of a place when it has expired.
type Refresher interface {
	RefreshIfExpired(ctx context.Context, placeID string) (bool, error)
}

// PlaceLister lists the places to keep fresh.
type PlaceLister interface {
	List(ctx context.Context) ([]weather.Place, error)
	Default() weather.Place
}

// Pruner drops cached data past its retention.
type Pruner interface {
	Prune(ctx context.Context) (int, error)
}

// Scheduler periodically refreshes expired forecasts of the saved places and
// the default place.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	places    PlaceLister
	pruner    Pruner
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. pruner may be nil.
func New(places PlaceLister, refresher Refresher, pruner Pruner, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		places:    places,
		pruner:    pruner,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every known place whose forecast has expired and prunes
// the store. Failures are logged; one failing place does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	log.Println("scheduler: running forecast refresh job")

	saved, err := s.places.List(ctx)
	if err != nil {
		log.Printf("ERROR: scheduler: listing places: %v", err)
	}
	ids := placeIDs(s.places.Default(), saved)

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			refreshed, err := s.refresher.RefreshIfExpired(ctx, id)
			if err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", id, err)
				return nil
			}
			if refreshed {
				log.Printf("DEBUG: scheduler: refreshed forecast for %s", id)
			}
			return nil
		})
	}
	g.Wait()

	if s.pruner != nil {
		removed, err := s.pruner.Prune(ctx)
		if err != nil {
			log.Printf("ERROR: scheduler: pruning store: %v", err)
		} else if removed > 0 {
			log.Printf("INFO: scheduler: pruned %d outdated forecasts", removed)
		}
	}
	log.Printf("scheduler: completed forecast refresh job for %d places", len(ids))
}

// placeIDs returns the default id followed by the saved ones, without
// duplicates.
func placeIDs(def weather.Place, saved []weather.Place) []string {
	seen := make(map[string]bool, len(saved)+1)
	var ids []string
	for _, p := range append([]weather.Place{def}, saved...) {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return ids
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
