package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_dashboard/internal/adapters/observability"
	"review_dashboard/internal/app"
	"review_dashboard/internal/domain"
	"review_dashboard/internal/shared"
	"review_dashboard/internal/wiring"
)

// job is one upstream source to check.
type job struct {
	name string
	run  func(ctx context.Context) (app.IngestReport, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("store", cfg.ApprovalStore).
		Int("workers", cfg.Workers).
		Int("places", len(cfg.PlaceIDs)).
		Msg("ingestor starting")

	store, err := wiring.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("approval store unavailable")
	}
	defer store.Close()

	h, p := wiring.Clients(cfg)
	svc := app.NewReviewService(h, p, store.ApprovalStore, app.ServiceOptions{
		FixturesOnly: cfg.FixturesOnly,
		PropertyName: cfg.PropertyName,
	})
	ing := app.NewIngestionService(svc, store.ApprovalStore)

	var jobs []job
	if h != nil && !cfg.FixturesOnly {
		jobs = append(jobs, job{name: "hostaway", run: ing.IngestHostaway})
	}
	if p != nil && !cfg.FixturesOnly {
		for _, id := range cfg.PlaceIDs {
			id := id
			jobs = append(jobs, job{name: "google:" + id, run: func(ctx context.Context) (app.IngestReport, error) {
				return ing.IngestPlace(ctx, id)
			}})
		}
	}
	if len(jobs) == 0 {
		log.Warn().Msg("no live sources configured, nothing to ingest")
		return
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg          sync.WaitGroup
		failed      atomic.Int32
		fetched     atomic.Int64
		storeFailed atomic.Bool
	)

	for _, j := range jobs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("interrupted, waiting for running jobs")
			break
		}

		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			defer sem.Release(1)

			rep, err := j.run(ctx)
			if err != nil {
				failed.Add(1)
				// upstream trouble is retried on the next run; store trouble is fatal
				var ue *domain.UpstreamError
				if !errors.As(err, &ue) {
					storeFailed.Store(true)
				}
				log.Warn().Str("source", j.name).Err(err).Msg("ingest failed")
				return
			}
			fetched.Add(int64(rep.Fetched))
			log.Info().
				Str("source", j.name).
				Int("fetched", rep.Fetched).
				Int("decided", rep.Decided).
				Int("approved", rep.Approved).
				Msg("ingest ok")
		}(j)
	}

	wg.Wait()
	log.Info().Int64("fetched", fetched.Load()).Int32("failed", failed.Load()).Msg("ingestion completed")
	if storeFailed.Load() {
		store.Close()
		os.Exit(1)
	}
}
