package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_dashboard/internal/app"
	"review_dashboard/internal/domain"
)

func ids(rs []domain.NormalizedReview) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestParseFilter(t *testing.T) {
	f, err := app.ParseFilter("", "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.Filter{Property: "all", Status: "all", Sort: "date"}, f)

	f, err = app.ParseFilter(" Loft 1 - A ", "Approved", "RATING")
	require.NoError(t, err)
	assert.Equal(t, domain.Filter{Property: "Loft 1 - A", Status: "approved", Sort: "rating"}, f)

	_, err = app.ParseFilter("", "archived", "")
	assert.True(t, errors.Is(err, app.ErrInvalidInput))

	_, err = app.ParseFilter("", "", "stars")
	assert.True(t, errors.Is(err, app.ErrInvalidInput))
}

func TestFilterAndSort_DateNewestFirst(t *testing.T) {
	in := []domain.NormalizedReview{
		review(1, "A - x", intp(5), true, t0),
		review(2, "A - x", intp(5), true, t0.Add(2*time.Hour)),
		review(3, "A - x", intp(5), true, t0.Add(time.Hour)),
	}
	got := app.FilterAndSort(in, domain.Filter{Sort: domain.SortDate})
	assert.Equal(t, []int64{2, 3, 1}, ids(got))
	assert.Equal(t, []int64{1, 2, 3}, ids(in), "input untouched")
}

func TestFilterAndSort_RatingTreatsUnratedAsZeroAndIsStable(t *testing.T) {
	in := []domain.NormalizedReview{
		review(1, "A - x", nil, true, t0),
		review(2, "A - x", intp(9), true, t0),
		review(3, "A - x", intp(0), true, t0),
		review(4, "A - x", intp(9), true, t0),
		review(5, "A - x", intp(7), true, t0),
	}
	got := app.FilterAndSort(in, domain.Filter{Sort: domain.SortRating})
	assert.Equal(t, []int64{2, 4, 5, 1, 3}, ids(got))
}

func TestFilterAndSort_PropertyAlphabetical(t *testing.T) {
	in := []domain.NormalizedReview{
		review(1, "beta - x", nil, true, t0),
		review(2, "Alpha - x", nil, true, t0),
		review(3, "Ćerry - x", nil, true, t0),
		review(4, "alpha - x", nil, true, t0),
		review(5, "Delta - x", nil, true, t0),
	}
	got := app.FilterAndSort(in, domain.Filter{Sort: domain.SortProperty})
	require.Len(t, got, 5)
	assert.ElementsMatch(t, []int64{2, 4}, ids(got[:2]), "both alphas lead")
	assert.Equal(t, []int64{1, 3, 5}, ids(got[2:]))
}

func TestFilterAndSort_Filters(t *testing.T) {
	in := []domain.NormalizedReview{
		review(1, "A - x", intp(5), true, t0),
		review(2, "B - y", intp(5), false, t0),
		review(3, "A - x", intp(5), false, t0),
	}

	got := app.FilterAndSort(in, domain.Filter{Property: "A - x", Status: domain.FilterAll, Sort: domain.SortDate})
	assert.Equal(t, []int64{1, 3}, ids(got))

	got = app.FilterAndSort(in, domain.Filter{Property: domain.FilterAll, Status: domain.FilterApproved, Sort: domain.SortDate})
	assert.Equal(t, []int64{1}, ids(got))

	got = app.FilterAndSort(in, domain.Filter{Property: "A - x", Status: domain.FilterPending, Sort: domain.SortDate})
	assert.Equal(t, []int64{3}, ids(got))

	got = app.FilterAndSort(in, domain.Filter{Property: "Nowhere", Sort: domain.SortDate})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
