package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"review_dashboard/internal/adapters/hostaway"
	"review_dashboard/internal/adapters/observability"
	"review_dashboard/internal/adapters/places"
	"review_dashboard/internal/domain"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPlaceIDRequired = fmt.Errorf("%w: placeId is required for live Google reviews", ErrInvalidInput)
)

const (
	sourceMock     = "mock"
	sourceHostaway = "hostaway-api"
	sourceGoogle   = "google-places-api"
	sourceCombined = "combined"

	notesNoKey = "Google Places API key not configured. Using mock data for demonstration."
	notesMock  = "Mock data requested."
	notesLive  = "Live Google Places API data"

	// fixture reviews are keyed as if they came from this place
	fixturePlaceID = "fixture"
)

type ServiceOptions struct {
	FixturesOnly   bool
	DefaultPlaceID string
	PropertyName   string // display name for the Google bucket
	Now            func() time.Time
}

// ReviewService fetches, normalizes and decorates reviews with stored
// approval decisions. A nil client means fixture data for that source.
type ReviewService struct {
	hostaway domain.HostawayClient
	places   domain.PlacesClient
	store    domain.ApprovalStore
	opts     ServiceOptions
}

func NewReviewService(h domain.HostawayClient, p domain.PlacesClient, store domain.ApprovalStore, opts ServiceOptions) *ReviewService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReviewService{hostaway: h, places: p, store: store, opts: opts}
}

func (s *ReviewService) Hostaway(ctx context.Context, fo domain.FetchOptions) (domain.Batch, error) {
	useMock := fo.Mock || s.opts.FixturesOnly || s.hostaway == nil

	var raw []domain.HostawayReview
	if useMock {
		raw = hostaway.Fixture()
	} else {
		var err error
		if raw, err = s.hostaway.ListReviews(ctx); err != nil {
			return domain.Batch{}, err
		}
	}

	reviews, err := NormalizeHostaway(raw)
	if err != nil {
		return domain.Batch{}, err
	}
	observability.ObserveNormalized(string(domain.SourceHostaway), mode(useMock), len(reviews))

	if err := s.applyApprovals(ctx, reviews); err != nil {
		return domain.Batch{}, err
	}

	if pid := strings.TrimSpace(fo.PropertyID); pid != "" {
		kept := reviews[:0]
		for _, r := range reviews {
			if r.PropertyID == pid || strings.Contains(r.PropertyName, pid) {
				kept = append(kept, r)
			}
		}
		reviews = kept
	}

	src := sourceHostaway
	if useMock {
		src = sourceMock
	}
	return domain.Batch{Reviews: reviews, Source: src}, nil
}

func (s *ReviewService) Google(ctx context.Context, fo domain.FetchOptions) (domain.Batch, error) {
	useMock := fo.Mock || s.opts.FixturesOnly || s.places == nil

	notes := notesLive
	switch {
	case s.places == nil:
		notes = notesNoKey
	case useMock:
		notes = notesMock
	}

	placeID := strings.TrimSpace(fo.PlaceID)
	if placeID == "" {
		placeID = s.opts.DefaultPlaceID
	}

	var raw []domain.PlaceReview
	if useMock {
		raw = places.Fixture(s.opts.Now())
		placeID = fixturePlaceID
	} else {
		if placeID == "" {
			return domain.Batch{}, ErrPlaceIDRequired
		}
		var err error
		if raw, err = s.places.PlaceReviews(ctx, placeID); err != nil {
			return domain.Batch{}, err
		}
	}

	name := fo.PropertyName
	if strings.TrimSpace(name) == "" {
		name = s.opts.PropertyName
	}
	reviews := NormalizePlaces(placeID, raw, name)
	observability.ObserveNormalized(string(domain.SourceGoogle), mode(useMock), len(reviews))

	if err := s.applyApprovals(ctx, reviews); err != nil {
		return domain.Batch{}, err
	}

	src := sourceGoogle
	if useMock {
		src = sourceMock
	}
	return domain.Batch{Reviews: reviews, Source: src, Notes: notes}, nil
}

// All fetches both sources concurrently; either failing fails the call.
func (s *ReviewService) All(ctx context.Context, fo domain.FetchOptions) (domain.Batch, error) {
	var ha, gb domain.Batch
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ha, err = s.Hostaway(gctx, domain.FetchOptions{Mock: fo.Mock, PropertyID: fo.PropertyID})
		return err
	})
	g.Go(func() error {
		var err error
		gb, err = s.Google(gctx, domain.FetchOptions{Mock: fo.Mock, PlaceID: fo.PlaceID, PropertyName: fo.PropertyName})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Batch{}, err
	}

	out := make([]domain.NormalizedReview, 0, len(ha.Reviews)+len(gb.Reviews))
	out = append(out, ha.Reviews...)
	out = append(out, gb.Reviews...)

	src := sourceCombined
	if ha.Source == sourceMock && gb.Source == sourceMock {
		src = sourceMock
	}
	return domain.Batch{Reviews: out, Source: src, Notes: gb.Notes}, nil
}

// Dashboard returns the filtered list plus summaries and stats over the
// unfiltered batch.
func (s *ReviewService) Dashboard(ctx context.Context, f domain.Filter, mock bool) (domain.Dashboard, string, error) {
	b, err := s.Hostaway(ctx, domain.FetchOptions{Mock: mock})
	if err != nil {
		return domain.Dashboard{}, "", err
	}
	return domain.Dashboard{
		Reviews:   FilterAndSort(b.Reviews, f),
		Summaries: Summarize(b.Reviews),
		Stats:     Stats(b.Reviews),
	}, b.Source, nil
}

func (s *ReviewService) Public(ctx context.Context, mock bool) ([]domain.PublicProperty, string, error) {
	b, err := s.Hostaway(ctx, domain.FetchOptions{Mock: mock})
	if err != nil {
		return nil, "", err
	}
	return PublicProperties(b.Reviews), b.Source, nil
}

func (s *ReviewService) SetApproval(ctx context.Context, id int64, approved bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: review id must be positive", ErrInvalidInput)
	}
	if err := s.store.Set(ctx, id, approved); err != nil {
		return fmt.Errorf("store approval for %d: %w", id, err)
	}
	log.Info().Int64("id", id).Bool("approved", approved).Msg("approval updated")
	return nil
}

// ResetApproval drops a stored decision so the source default applies again.
func (s *ReviewService) ResetApproval(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: review id must be positive", ErrInvalidInput)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("reset approval for %d: %w", id, err)
	}
	log.Info().Int64("id", id).Msg("approval reset")
	return nil
}

func (s *ReviewService) applyApprovals(ctx context.Context, reviews []domain.NormalizedReview) error {
	if s.store == nil || len(reviews) == 0 {
		return nil
	}
	ids := make([]int64, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
	}
	decided, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("load approvals: %w", err)
	}
	for i := range reviews {
		if v, ok := decided[reviews[i].ID]; ok {
			reviews[i].IsApprovedForPublic = v
		}
	}
	return nil
}

func mode(mock bool) string {
	if mock {
		return "mock"
	}
	return "live"
}
