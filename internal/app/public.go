package app

import "review_dashboard/internal/domain"

// PublicProperties keeps approved reviews and groups them per property display
// name in encounter order. StarRating is on a 5 point scale, undefined overall
// ratings count as 0.
func PublicProperties(reviews []domain.NormalizedReview) []domain.PublicProperty {
	var out []domain.PublicProperty
	index := make(map[string]int)
	for _, r := range reviews {
		if !r.IsApprovedForPublic {
			continue
		}
		i, ok := index[r.PropertyName]
		if !ok {
			i = len(out)
			index[r.PropertyName] = i
			out = append(out, domain.PublicProperty{PropertyID: r.PropertyID, PropertyName: r.PropertyName})
		}
		out[i].Reviews = append(out[i].Reviews, r)
	}

	for i := range out {
		p := &out[i]
		p.ReviewCount = len(p.Reviews)
		sum := 0
		for _, r := range p.Reviews {
			sum += r.Overall()
		}
		p.StarRating = round1(float64(sum) / float64(p.ReviewCount) / 2)
	}
	if out == nil {
		out = []domain.PublicProperty{}
	}
	return out
}
