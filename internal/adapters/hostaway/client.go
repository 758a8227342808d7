// internal/adapters/hostaway/client.go
package hostaway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"review_dashboard/internal/adapters/observability"
	"review_dashboard/internal/domain"
)

const service = "hostaway"

type Client struct {
	base      string
	hc        *http.Client
	key       string
	accountID string
	rl        *rate.Limiter
}

func New(base, key, accountID string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		hc:        &http.Client{Timeout: timeout},
		key:       key,
		accountID: accountID,
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type envelope struct {
	Status string                  `json:"status"`
	Result []domain.HostawayReview `json:"result"`
}

// ListReviews fetches every review of the configured account. No retries:
// a failed call surfaces to the caller as an *domain.UpstreamError.
func (c *Client) ListReviews(ctx context.Context) ([]domain.HostawayReview, error) {
	u := fmt.Sprintf("%s/reviews?accountId=%s", c.base, url.QueryEscape(c.accountID))

	if err := c.rl.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamUnreachable, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "review-dashboard/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		ue := &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamUnreachable, Err: err}
		observability.ObserveExternalErr(service, "reviews", ue, time.Since(start))
		return nil, ue
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, "reviews", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// the body goes to the log only; callers may echo the error to clients
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if s := strings.TrimSpace(string(b)); s != "" {
			log.Warn().Str("service", service).Int("status", resp.StatusCode).Str("body", s).Msg("upstream error body")
		}
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamStatus, StatusCode: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamMalformed, Err: err}
	}
	if env.Status != "success" {
		return nil, &domain.UpstreamError{Service: service, Kind: domain.ErrUpstreamSemantic, Status: env.Status}
	}
	if env.Result == nil {
		return []domain.HostawayReview{}, nil
	}
	return env.Result, nil
}
