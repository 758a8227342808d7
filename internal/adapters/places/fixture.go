package places

import (
	"time"

	"review_dashboard/internal/domain"
)

const day = 24 * time.Hour

// Fixture returns three sample reviews timestamped relative to now.
func Fixture(now time.Time) []domain.PlaceReview {
	ago := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }
	return []domain.PlaceReview{
		{
			AuthorName:              "John Smith",
			Rating:                  5,
			Text:                    "Great location and excellent service from Flex Living. The apartment was clean and modern with everything we needed for our stay.",
			RelativeTimeDescription: "2 weeks ago",
			Time:                    ago(14 * day),
		},
		{
			AuthorName:              "Maria Garcia",
			Rating:                  4,
			Text:                    "Very comfortable stay. The property management was responsive and helpful. Only minor issue was noise from the street but overall excellent.",
			RelativeTimeDescription: "1 month ago",
			Time:                    ago(30 * day),
		},
		{
			AuthorName:              "David Chen",
			Rating:                  5,
			Text:                    "Outstanding experience with Flex Living. Professional service, beautiful apartment, and great location. Highly recommend!",
			RelativeTimeDescription: "3 weeks ago",
			Time:                    ago(21 * day),
		},
	}
}
