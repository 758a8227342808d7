package app

import (
	"sort"

	"review_dashboard/internal/domain"
)

const recentReviewsLimit = 3

// Summarize builds one summary per property display name. Two listings that
// share a display name land in the same bucket; the first review seen supplies
// the bucket's PropertyID. Output is ordered by review count, ties keep
// encounter order.
func Summarize(reviews []domain.NormalizedReview) []domain.PropertySummary {
	var order []string
	buckets := make(map[string][]domain.NormalizedReview)
	for _, r := range reviews {
		if _, ok := buckets[r.PropertyName]; !ok {
			order = append(order, r.PropertyName)
		}
		buckets[r.PropertyName] = append(buckets[r.PropertyName], r)
	}

	out := make([]domain.PropertySummary, 0, len(order))
	for _, name := range order {
		rs := buckets[name]
		s := domain.PropertySummary{
			PropertyID:   rs[0].PropertyID,
			PropertyName: name,
			TotalReviews: len(rs),
		}

		sum, rated := 0, 0
		for _, r := range rs {
			if r.IsApprovedForPublic {
				s.ApprovedReviews++
			} else {
				s.PendingReviews++
			}
			if r.OverallRating != nil {
				sum += *r.OverallRating
				rated++
			}
		}
		if rated > 0 {
			s.AverageRating = round1(float64(sum) / float64(rated))
		}
		s.RecentReviews = mostRecent(rs, recentReviewsLimit)
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalReviews > out[j].TotalReviews })
	return out
}

func mostRecent(rs []domain.NormalizedReview, n int) []domain.NormalizedReview {
	cp := make([]domain.NormalizedReview, len(rs))
	copy(cp, rs)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].SubmittedAt.After(cp[j].SubmittedAt) })
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

// Stats backs the dashboard header and its property dropdown.
func Stats(reviews []domain.NormalizedReview) domain.DashboardStats {
	st := domain.DashboardStats{Total: len(reviews), Properties: []string{}}
	seen := make(map[string]struct{})
	for _, r := range reviews {
		if r.IsApprovedForPublic {
			st.Approved++
		} else {
			st.Pending++
		}
		if _, ok := seen[r.PropertyName]; !ok {
			seen[r.PropertyName] = struct{}{}
			st.Properties = append(st.Properties, r.PropertyName)
		}
	}
	return st
}
