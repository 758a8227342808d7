package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpserver "review_dashboard/internal/adapters/http_server"
	"review_dashboard/internal/adapters/memory"
	"review_dashboard/internal/app"
	"review_dashboard/internal/domain"
)

type failingHostaway struct{ err error }

func (f failingHostaway) ListReviews(context.Context) ([]domain.HostawayReview, error) {
	return nil, f.err
}

type okEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Total  int    `json:"total"`
		Source string `json:"source"`
		Notes  string `json:"notes"`
	} `json:"meta"`
}

type failEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T, h domain.HostawayClient) *httptest.Server {
	t.Helper()
	svc := app.NewReviewService(h, nil, memory.New(), app.ServiceOptions{})
	s := httpserver.New([]string{"http://localhost:3000"})
	s.MountHandlers(&httpserver.Handlers{S: svc})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestHealthz_Unhealthy(t *testing.T) {
	svc := app.NewReviewService(nil, nil, memory.New(), app.ServiceOptions{})
	s := httpserver.New(nil)
	s.MountHandlers(&httpserver.Handlers{S: svc, Health: func(context.Context) error { return errors.New("redis down") }})
	ts := httptest.NewServer(s.Mux())
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestHostawayReviews_Fixture(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/reviews/hostaway?mock=true", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	env := decode[okEnvelope](t, resp)
	if !env.Success || env.Meta.Total != 5 || env.Meta.Source != "mock" {
		t.Fatalf("envelope: %+v", env)
	}
	var rs []domain.NormalizedReview
	if err := json.Unmarshal(env.Data, &rs); err != nil {
		t.Fatalf("data: %v", err)
	}
	if rs[0].PropertyID != "2B N1 A" || *rs[0].OverallRating != 9 {
		t.Fatalf("first review: %+v", rs[0])
	}
}

func TestHostawayReviews_PropertyFilter(t *testing.T) {
	ts := newTestServer(t, nil)
	env := decode[okEnvelope](t, do(t, http.MethodGet, ts.URL+"/api/reviews/hostaway?propertyId=Mayfair", "", nil))
	if env.Meta.Total != 1 {
		t.Fatalf("total=%d", env.Meta.Total)
	}
}

func TestHostawayReviews_UpstreamFailure(t *testing.T) {
	upstream := &domain.UpstreamError{Service: "hostaway", Kind: domain.ErrUpstreamUnreachable, Err: errors.New("dial tcp: refused")}
	ts := newTestServer(t, failingHostaway{err: upstream})

	resp := do(t, http.MethodGet, ts.URL+"/api/reviews/hostaway", "", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	env := decode[failEnvelope](t, resp)
	if env.Success || env.Error != "Failed to fetch reviews from Hostaway" || !strings.Contains(env.Message, "refused") {
		t.Fatalf("envelope: %+v", env)
	}
}

func TestGoogleReviews_NoKeyNotes(t *testing.T) {
	ts := newTestServer(t, nil)
	env := decode[okEnvelope](t, do(t, http.MethodGet, ts.URL+"/api/reviews/google", "", nil))
	if env.Meta.Total != 3 || env.Meta.Notes == "" {
		t.Fatalf("envelope: %+v", env)
	}
}

func TestAllReviews(t *testing.T) {
	ts := newTestServer(t, nil)
	env := decode[okEnvelope](t, do(t, http.MethodGet, ts.URL+"/api/reviews?mock=true", "", nil))
	if env.Meta.Total != 8 {
		t.Fatalf("total=%d", env.Meta.Total)
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/dashboard?sort=rating&status=approved", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	env := decode[okEnvelope](t, resp)
	var d domain.Dashboard
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(d.Reviews) != 5 || len(d.Summaries) != 3 || d.Stats.Approved != 5 {
		t.Fatalf("dashboard: reviews=%d summaries=%d stats=%+v", len(d.Reviews), len(d.Summaries), d.Stats)
	}
	if d.Reviews[0].ID != 7454 {
		t.Fatalf("highest rated first, got %d", d.Reviews[0].ID)
	}
}

func TestDashboard_BadSort(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := do(t, http.MethodGet, ts.URL+"/api/dashboard?sort=stars", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	env := decode[failEnvelope](t, resp)
	if env.Success || env.Error != "Invalid request" {
		t.Fatalf("envelope: %+v", env)
	}
}

func TestApprovalToggle_ReflectsInPublicView(t *testing.T) {
	ts := newTestServer(t, nil)

	first := do(t, http.MethodGet, ts.URL+"/api/properties", "", nil)
	etag := first.Header.Get("ETag")
	if first.StatusCode != http.StatusOK || etag == "" {
		t.Fatalf("status=%d etag=%q", first.StatusCode, etag)
	}
	if env := decode[okEnvelope](t, first); env.Meta.Total != 3 {
		t.Fatalf("properties=%d", env.Meta.Total)
	}

	cached := do(t, http.MethodGet, ts.URL+"/api/properties", "", map[string]string{"If-None-Match": etag})
	if cached.StatusCode != http.StatusNotModified {
		t.Fatalf("want 304, got %d", cached.StatusCode)
	}

	resp := do(t, http.MethodPut, ts.URL+"/api/reviews/7457/approval", `{"approved":false}`, map[string]string{"Content-Type": "application/json"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status=%d", resp.StatusCode)
	}

	after := do(t, http.MethodGet, ts.URL+"/api/properties", "", map[string]string{"If-None-Match": etag})
	if after.StatusCode != http.StatusOK {
		t.Fatalf("stale etag should miss, got %d", after.StatusCode)
	}
	if env := decode[okEnvelope](t, after); env.Meta.Total != 2 {
		t.Fatalf("rejected property still listed: total=%d", env.Meta.Total)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/reviews/7457/approval", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status=%d", resp.StatusCode)
	}
	restored := do(t, http.MethodGet, ts.URL+"/api/properties", "", map[string]string{"If-None-Match": etag})
	if restored.StatusCode != http.StatusNotModified {
		t.Fatalf("reset should restore the original view, got %d", restored.StatusCode)
	}
}

func TestApproval_BadInput(t *testing.T) {
	ts := newTestServer(t, nil)
	cases := []struct {
		method, path, body string
	}{
		{http.MethodPut, "/api/reviews/abc/approval", `{"approved":true}`},
		{http.MethodPut, "/api/reviews/0/approval", `{"approved":true}`},
		{http.MethodPut, "/api/reviews/7453/approval", `{}`},
		{http.MethodPut, "/api/reviews/7453/approval", `{"approved":"yes"}`},
		{http.MethodPut, "/api/reviews/7453/approval", `{"approved":true,"extra":1}`},
		{http.MethodPut, "/api/reviews/7453/approval", `not json`},
		{http.MethodDelete, "/api/reviews/-1/approval", ``},
	}
	for _, c := range cases {
		resp := do(t, c.method, ts.URL+c.path, c.body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s %s %q: status=%d", c.method, c.path, c.body, resp.StatusCode)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := do(t, http.MethodOptions, ts.URL+"/api/reviews/7453/approval", "", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPut,
	})
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow-origin=%q", got)
	}
}
