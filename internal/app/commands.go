package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"review_dashboard/internal/domain"
)

// FailureLogger is implemented by stores that can record failed ingests.
type FailureLogger interface {
	LogFailure(ctx context.Context, source, kind, message string) error
}

// IngestionService polls every upstream source, validating credentials and
// payloads, and records upstream refusals. It never writes approval
// decisions: a review without a manager decision keeps following its
// source default, even when that default changes upstream.
type IngestionService struct {
	reviews *ReviewService
	store   domain.ApprovalStore
}

// IngestReport summarizes one source pass.
type IngestReport struct {
	Fetched  int // reviews returned by the source
	Decided  int // reviews carrying a manager decision
	Approved int // reviews currently shown publicly
}

func NewIngestionService(r *ReviewService, store domain.ApprovalStore) *IngestionService {
	return &IngestionService{reviews: r, store: store}
}

func (s *IngestionService) IngestHostaway(ctx context.Context) (IngestReport, error) {
	b, err := s.reviews.Hostaway(ctx, domain.FetchOptions{})
	if err != nil {
		return IngestReport{}, s.handleFetchError(ctx, "hostaway", err)
	}
	return s.report(ctx, b.Reviews)
}

// IngestPlace does the same for one Places id.
func (s *IngestionService) IngestPlace(ctx context.Context, placeID string) (IngestReport, error) {
	b, err := s.reviews.Google(ctx, domain.FetchOptions{PlaceID: placeID})
	if err != nil {
		return IngestReport{}, s.handleFetchError(ctx, "google:"+placeID, err)
	}
	return s.report(ctx, b.Reviews)
}

func (s *IngestionService) report(ctx context.Context, reviews []domain.NormalizedReview) (IngestReport, error) {
	rep := IngestReport{Fetched: len(reviews)}
	ids := make([]int64, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
		if r.IsApprovedForPublic {
			rep.Approved++
		}
	}
	decided, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return rep, fmt.Errorf("load approvals: %w", err)
	}
	rep.Decided = len(decided)
	return rep, nil
}

// handleFetchError records upstream refusals (non-2xx or a failure status)
// and swallows them; transport and payload errors bubble up.
func (s *IngestionService) handleFetchError(ctx context.Context, source string, err error) error {
	var kind string
	switch {
	case errors.Is(err, domain.ErrUpstreamStatus):
		kind = "http_status"
	case errors.Is(err, domain.ErrUpstreamSemantic):
		kind = "semantic"
	default:
		return err
	}
	log.Warn().Str("source", source).Str("kind", kind).Err(err).Msg("upstream refused, skipping")
	if fl, ok := s.store.(FailureLogger); ok {
		if lerr := fl.LogFailure(ctx, source, kind, err.Error()); lerr != nil {
			log.Error().Err(lerr).Str("source", source).Msg("log failure failed")
		}
	}
	return nil
}
