package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_dashboard/internal/app"
	"review_dashboard/internal/domain"
)

func TestPublicProperties_Fixture(t *testing.T) {
	got := app.PublicProperties(fixtureReviews(t))
	require.Len(t, got, 3)

	assert.Equal(t, "2B N1 A", got[0].PropertyID)
	assert.Equal(t, 2, got[0].ReviewCount)
	assert.Equal(t, 4.8, got[0].StarRating) // 9.5 / 2 rounded half up
	assert.Equal(t, 4.5, got[1].StarRating)
	assert.Equal(t, 1, got[2].ReviewCount)
}

func TestPublicProperties_OnlyApproved(t *testing.T) {
	rs := fixtureReviews(t)
	rs[4].IsApprovedForPublic = false // the only Mayfair review
	rs[0].IsApprovedForPublic = false

	got := app.PublicProperties(rs)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ReviewCount)
	assert.Equal(t, int64(7454), got[0].Reviews[0].ID)
	assert.Equal(t, 5.0, got[0].StarRating)
	for _, p := range got {
		for _, r := range p.Reviews {
			assert.True(t, r.IsApprovedForPublic)
		}
	}
}

func TestPublicProperties_NoneApproved(t *testing.T) {
	got := app.PublicProperties([]domain.NormalizedReview{review(1, "A - x", intp(8), false, t0)})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPublicProperties_UnratedCountsAsZero(t *testing.T) {
	got := app.PublicProperties([]domain.NormalizedReview{
		review(1, "A - x", intp(10), true, t0),
		review(2, "A - x", nil, true, t0),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 2.5, got[0].StarRating)
}
