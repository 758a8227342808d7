package app

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"review_dashboard/internal/domain"
)

const (
	// GoogleIDOffset moves Places review ids out of the Hostaway id range.
	GoogleIDOffset int64 = 1_000_000_000
	// maxReviewID keeps ids exact as JSON numbers in browsers (2^53 - 1).
	maxReviewID int64 = 1<<53 - 1

	GooglePropertyID   = "google-property"
	GooglePropertyName = "Flex Living Property"

	UnknownPropertyID = "unknown"

	listingSeparator = " - "
)

var hostawayTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

/********** tiny helpers **********/

// roundHalfUp rounds .5 toward +Inf.
func roundHalfUp(f float64) float64 { return math.Floor(f + 0.5) }

// round1 rounds to one decimal place, half up.
func round1(f float64) float64 { return math.Floor(f*10+0.5) / 10 }

func clampRating(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 10:
		return 10
	}
	return n
}

func ptr[T any](v T) *T { return &v }

// PropertyIDFromListing returns the text before the first " - " of a Hostaway
// listing name, or "unknown" when there is no separator or nothing before it.
func PropertyIDFromListing(listing string) string {
	i := strings.Index(listing, listingSeparator)
	if i <= 0 {
		return UnknownPropertyID
	}
	return listing[:i]
}

// parseStatus is exact: anything other than the three known values is pending.
func parseStatus(s string) domain.Status {
	switch domain.Status(s) {
	case domain.StatusPublished:
		return domain.StatusPublished
	case domain.StatusHidden:
		return domain.StatusHidden
	case domain.StatusPending:
		return domain.StatusPending
	}
	return domain.StatusPending
}

func parseHostawayTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range hostawayTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized submittedAt %q", s)
}

// hostawayOverall averages the category ratings. A review without categories
// falls back to its raw rating; with neither, the overall rating is undefined.
func hostawayOverall(r domain.HostawayReview) *int {
	if n := len(r.ReviewCategory); n > 0 {
		sum := 0
		for _, c := range r.ReviewCategory {
			sum += c.Rating
		}
		return ptr(clampRating(int(roundHalfUp(float64(sum) / float64(n)))))
	}
	if r.Rating != nil && !math.IsNaN(*r.Rating) {
		return ptr(clampRating(int(roundHalfUp(*r.Rating))))
	}
	return nil
}

/********** hostaway mapper **********/

// NormalizeHostaway maps a Hostaway batch, preserving order. One bad record
// fails the whole batch.
func NormalizeHostaway(in []domain.HostawayReview) ([]domain.NormalizedReview, error) {
	out := make([]domain.NormalizedReview, 0, len(in))
	for _, r := range in {
		submitted, err := parseHostawayTime(r.SubmittedAt)
		if err != nil {
			return nil, &domain.UpstreamError{
				Service: "hostaway",
				Kind:    domain.ErrUpstreamMalformed,
				Err:     fmt.Errorf("review %d: %w", r.ID, err),
			}
		}

		status := parseStatus(r.Status)
		if string(status) != r.Status {
			log.Debug().Int64("id", r.ID).Str("status", r.Status).Msg("unknown hostaway status, treating as pending")
		}

		cats := make([]domain.Category, len(r.ReviewCategory))
		copy(cats, r.ReviewCategory)

		out = append(out, domain.NormalizedReview{
			ID:                  r.ID,
			Source:              domain.SourceHostaway,
			PropertyID:          PropertyIDFromListing(r.ListingName),
			PropertyName:        r.ListingName,
			GuestName:           r.GuestName,
			Rating:              r.Rating,
			OverallRating:       hostawayOverall(r),
			ReviewText:          r.PublicReview,
			Categories:          cats,
			SubmittedAt:         submitted,
			Channel:             "Hostaway",
			Type:                r.Type,
			Status:              status,
			IsApprovedForPublic: status == domain.StatusPublished,
		})
	}
	return out, nil
}

/********** places mapper **********/

// PlaceReviewID derives a review id from the place and the author, so it
// survives reordering and differs across places. Google keeps one review per
// account and place; without an author URL the name and text stand in. Ids
// fall in [GoogleIDOffset, 2^53).
func PlaceReviewID(placeID string, r domain.PlaceReview) int64 {
	h := fnv.New64a()
	// NUL separators keep ("ab","c") and ("a","bc") apart
	if r.AuthorURL != "" {
		fmt.Fprintf(h, "%s\x00url\x00%s", placeID, r.AuthorURL)
	} else {
		fmt.Fprintf(h, "%s\x00name\x00%s\x00%s", placeID, r.AuthorName, r.Text)
	}
	return GoogleIDOffset + int64(h.Sum64()%uint64(maxReviewID-GoogleIDOffset))
}

// NormalizePlaces maps the reviews of one place into the synthetic Google
// property bucket. An empty propertyName uses the default display name.
func NormalizePlaces(placeID string, in []domain.PlaceReview, propertyName string) []domain.NormalizedReview {
	if strings.TrimSpace(propertyName) == "" {
		propertyName = GooglePropertyName
	}
	out := make([]domain.NormalizedReview, 0, len(in))
	for _, r := range in {
		overall := clampRating(r.Rating * 2)
		out = append(out, domain.NormalizedReview{
			ID:                  PlaceReviewID(placeID, r),
			Source:              domain.SourceGoogle,
			PropertyID:          GooglePropertyID,
			PropertyName:        propertyName,
			GuestName:           r.AuthorName,
			Rating:              ptr(float64(r.Rating)),
			OverallRating:       ptr(overall),
			ReviewText:          r.Text,
			Categories:          []domain.Category{{Category: "overall", Rating: overall}},
			SubmittedAt:         time.UnixMilli(r.Time).UTC(),
			Channel:             "Google Reviews",
			Type:                "guest-to-host",
			Status:              domain.StatusPublished,
			IsApprovedForPublic: true,
		})
	}
	return out
}
