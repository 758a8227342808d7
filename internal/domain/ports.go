package domain

import "context"

type HostawayClient interface {
	ListReviews(ctx context.Context) ([]HostawayReview, error)
}

type PlacesClient interface {
	PlaceReviews(ctx context.Context, placeID string) ([]PlaceReview, error)
}

// ApprovalStore persists manager decisions keyed by review id. Only explicit
// decisions are stored; a review without one follows its source default.
// Get reports ok=false when no decision was recorded.
type ApprovalStore interface {
	Get(ctx context.Context, id int64) (approved bool, ok bool, err error)
	GetMany(ctx context.Context, ids []int64) (map[int64]bool, error)
	Set(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

// Read models & queries

type Filter struct {
	Property string // display name; "" or "all" matches every property
	Status   string // all | approved | pending
	Sort     string // date | rating | property
}

const (
	SortDate     = "date"
	SortRating   = "rating"
	SortProperty = "property"

	FilterAll      = "all"
	FilterApproved = "approved"
	FilterPending  = "pending"
)

type FetchOptions struct {
	Mock         bool
	PropertyID   string // hostaway only
	PlaceID      string // google only
	PropertyName string // google only: display name override
}

// Batch is a normalized fetch result plus where it came from.
type Batch struct {
	Reviews []NormalizedReview
	Source  string // mock | hostaway-api | google-places-api | combined
	Notes   string
}

type Dashboard struct {
	Reviews   []NormalizedReview `json:"reviews"`
	Summaries []PropertySummary  `json:"summaries"`
	Stats     DashboardStats     `json:"stats"`
}
