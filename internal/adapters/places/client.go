package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"review_dashboard/internal/adapters/observability"
	"review_dashboard/internal/domain"
)

const service = "google"

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Reviews []domain.PlaceReview `json:"reviews"`
	} `json:"result"`
}

// PlaceReviews returns the reviews attached to a place. The live API reports
// review time in epoch seconds; it is converted to milliseconds here.
func (c *Client) PlaceReviews(ctx context.Context, placeID string) ([]domain.PlaceReview, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamUnreachable, Err: err}
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "reviews")
	q.Set("key", c.key)
	u := c.base + "/place/details/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		// url.Error embeds the full URL, which carries the key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		ue := &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamUnreachable, Err: err}
		observability.ObserveExternalErr(service, "place_details", ue, time.Since(start))
		return nil, ue
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, "place_details", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamStatus, StatusCode: resp.StatusCode}
	}

	var out detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamMalformed, Err: err}
	}
	if out.Status != "OK" {
		var detail error
		if out.ErrorMessage != "" {
			detail = errors.New(out.ErrorMessage)
		}
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamSemantic, Status: out.Status, Err: detail}
	}

	revs := out.Result.Reviews
	if revs == nil {
		return []domain.PlaceReview{}, nil
	}
	for i := range revs {
		revs[i].Time *= 1000
	}
	return revs, nil
}
