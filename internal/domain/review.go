package domain

import "time"

type Source string

const (
	SourceHostaway Source = "hostaway"
	SourceGoogle   Source = "google"
)

type Status string

const (
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
	StatusHidden    Status = "hidden"
)

type Category struct {
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

// NormalizedReview is the unified shape produced by every source adapter.
// OverallRating is derived by the mappers and is always on the 0-10 scale.
type NormalizedReview struct {
	ID                  int64      `json:"id"`
	Source              Source     `json:"source"`
	PropertyID          string     `json:"propertyId"`
	PropertyName        string     `json:"propertyName"`
	GuestName           string     `json:"guestName"`
	Rating              *float64   `json:"rating"`
	OverallRating       *int       `json:"overallRating,omitempty"`
	ReviewText          string     `json:"reviewText"`
	Categories          []Category `json:"categories"`
	SubmittedAt         time.Time  `json:"submittedAt"`
	Channel             string     `json:"channel"`
	Type                string     `json:"type"`
	Status              Status     `json:"status"`
	IsApprovedForPublic bool       `json:"isApprovedForPublic"`
}

// Overall returns the overall rating, 0 when undefined.
func (r NormalizedReview) Overall() int {
	if r.OverallRating == nil {
		return 0
	}
	return *r.OverallRating
}

type PropertySummary struct {
	PropertyID      string             `json:"propertyId"`
	PropertyName    string             `json:"propertyName"`
	TotalReviews    int                `json:"totalReviews"`
	AverageRating   float64            `json:"averageRating"`
	ApprovedReviews int                `json:"approvedReviews"`
	PendingReviews  int                `json:"pendingReviews"`
	RecentReviews   []NormalizedReview `json:"recentReviews"`
}

// PublicProperty is one property card on the public pages: approved reviews only.
type PublicProperty struct {
	PropertyID   string             `json:"propertyId"`
	PropertyName string             `json:"propertyName"`
	StarRating   float64            `json:"starRating"` // 0-5
	ReviewCount  int                `json:"reviewCount"`
	Reviews      []NormalizedReview `json:"reviews"`
}

type DashboardStats struct {
	Total      int      `json:"total"`
	Approved   int      `json:"approved"`
	Pending    int      `json:"pending"`
	Properties []string `json:"properties"`
}
