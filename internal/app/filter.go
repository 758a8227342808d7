package app

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"review_dashboard/internal/domain"
)

// ParseFilter validates dashboard query values; empty values take defaults.
func ParseFilter(property, status, sortKey string) (domain.Filter, error) {
	f := domain.Filter{
		Property: strings.TrimSpace(property),
		Status:   strings.ToLower(strings.TrimSpace(status)),
		Sort:     strings.ToLower(strings.TrimSpace(sortKey)),
	}
	if f.Property == "" {
		f.Property = domain.FilterAll
	}
	switch f.Status {
	case "":
		f.Status = domain.FilterAll
	case domain.FilterAll, domain.FilterApproved, domain.FilterPending:
	default:
		return domain.Filter{}, fmt.Errorf("%w: status must be one of all, approved, pending", ErrInvalidInput)
	}
	switch f.Sort {
	case "":
		f.Sort = domain.SortDate
	case domain.SortDate, domain.SortRating, domain.SortProperty:
	default:
		return domain.Filter{}, fmt.Errorf("%w: sort must be one of date, rating, property", ErrInvalidInput)
	}
	return f, nil
}

// FilterAndSort applies the property and status filters, then a stable sort.
// The input slice is left untouched.
func FilterAndSort(reviews []domain.NormalizedReview, f domain.Filter) []domain.NormalizedReview {
	out := make([]domain.NormalizedReview, 0, len(reviews))
	for _, r := range reviews {
		if f.Property != "" && f.Property != domain.FilterAll && r.PropertyName != f.Property {
			continue
		}
		if f.Status == domain.FilterApproved && !r.IsApprovedForPublic {
			continue
		}
		if f.Status == domain.FilterPending && r.IsApprovedForPublic {
			continue
		}
		out = append(out, r)
	}

	switch f.Sort {
	case domain.SortDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	case domain.SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Overall() > out[j].Overall() })
	case domain.SortProperty:
		// collators are not safe for concurrent use
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].PropertyName, out[j].PropertyName) < 0
		})
	}
	return out
}
