package domain

// HostawayReview is a review as returned by the Hostaway reviews endpoint.
type HostawayReview struct {
	ID             int64      `json:"id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Rating         *float64   `json:"rating"`
	PublicReview   string     `json:"publicReview"`
	ReviewCategory []Category `json:"reviewCategory"`
	SubmittedAt    string     `json:"submittedAt"` // "2006-01-02 15:04:05"
	GuestName      string     `json:"guestName"`
	ListingName    string     `json:"listingName"` // "<property id> - <free text>"
}

// PlaceReview is a review from the Places details endpoint.
// Time is epoch milliseconds; the places client converts the live API's seconds.
type PlaceReview struct {
	AuthorName              string `json:"author_name"`
	AuthorURL               string `json:"author_url,omitempty"`
	Language                string `json:"language,omitempty"`
	ProfilePhotoURL         string `json:"profile_photo_url,omitempty"`
	Rating                  int    `json:"rating"`
	RelativeTimeDescription string `json:"relative_time_description"`
	Text                    string `json:"text"`
	Time                    int64  `json:"time"`
}
