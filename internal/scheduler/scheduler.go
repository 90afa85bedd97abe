package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
)

// Scheduler periodically refreshes groundwater data for tracked locations so
// dashboards always have recent history even before a user queries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *groundwater.Service
	locations []groundwater.Coordinate
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []groundwater.Coordinate, interval time.Duration, service *groundwater.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running groundwater refresh job")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Budget for the full provider chain plus slack.
				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				res := s.service.Fetch(ctx, loc.Lat, loc.Lon)
				if !res.Success {
					log.Printf("scheduler: refresh failed for %s: %s", loc.Key(), res.Error)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed groundwater refresh job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
