package hostaway

import "review_dashboard/internal/domain"

// Fixture stands in for the live API when no credentials are configured or a
// caller asks for mock data. Three listings, five published reviews.
func Fixture() []domain.HostawayReview {
	return []domain.HostawayReview{
		{
			ID:           7453,
			Type:         "guest-to-host",
			Status:       "published",
			PublicReview: "Amazing stay at Shoreditch Heights! The apartment was modern, clean, and perfectly located. Shane was incredibly responsive and helpful throughout our stay. Would definitely recommend!",
			ReviewCategory: []domain.Category{
				{Category: "cleanliness", Rating: 10},
				{Category: "communication", Rating: 10},
				{Category: "location", Rating: 9},
				{Category: "value", Rating: 8},
			},
			SubmittedAt: "2024-08-21 22:45:14",
			GuestName:   "Sarah Johnson",
			ListingName: "2B N1 A - 29 Shoreditch Heights",
		},
		{
			ID:           7454,
			Type:         "guest-to-host",
			Status:       "published",
			PublicReview: "Great location in the heart of Shoreditch. The flat was exactly as described and very comfortable for our group of 4. Easy check-in process and excellent communication from the host team.",
			ReviewCategory: []domain.Category{
				{Category: "cleanliness", Rating: 9},
				{Category: "communication", Rating: 10},
				{Category: "location", Rating: 10},
				{Category: "value", Rating: 9},
			},
			SubmittedAt: "2024-08-15 14:30:22",
			GuestName:   "Michael Chen",
			ListingName: "2B N1 A - 29 Shoreditch Heights",
		},
		{
			ID:           7455,
			Type:         "guest-to-host",
			Status:       "published",
			PublicReview: "Lovely apartment with all the amenities we needed. The area is vibrant with lots of restaurants and shops nearby. Host was very accommodating with our late check-in request.",
			ReviewCategory: []domain.Category{
				{Category: "cleanliness", Rating: 8},
				{Category: "communication", Rating: 9},
				{Category: "location", Rating: 10},
				{Category: "amenities", Rating: 9},
			},
			SubmittedAt: "2024-08-10 09:15:33",
			GuestName:   "Emma Williams",
			ListingName: "1B E2 B - 15 Canary Wharf Tower",
		},
		{
			ID:           7456,
			Type:         "guest-to-host",
			Status:       "published",
			PublicReview: "Perfect for a business trip! Close to the office and transport links. The apartment was spotless and had everything needed for a comfortable stay.",
			ReviewCategory: []domain.Category{
				{Category: "cleanliness", Rating: 10},
				{Category: "communication", Rating: 8},
				{Category: "location", Rating: 10},
				{Category: "value", Rating: 8},
			},
			SubmittedAt: "2024-08-05 16:45:11",
			GuestName:   "David Thompson",
			ListingName: "1B E2 B - 15 Canary Wharf Tower",
		},
		{
			ID:           7457,
			Type:         "guest-to-host",
			Status:       "published",
			PublicReview: "Incredible views from this apartment! The space was modern and well-equipped. Great communication from the Flex Living team. Only minor issue was noise from construction nearby during the day.",
			ReviewCategory: []domain.Category{
				{Category: "cleanliness", Rating: 9},
				{Category: "communication", Rating: 10},
				{Category: "location", Rating: 8},
				{Category: "amenities", Rating: 9},
			},
			SubmittedAt: "2024-07-28 11:20:55",
			GuestName:   "Jennifer Lopez",
			ListingName: "Studio W1 C - 42 Mayfair Gardens",
		},
	}
}
