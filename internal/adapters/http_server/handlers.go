// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"review_dashboard/internal/app"
	"review_dashboard/internal/domain"
)

const maxApprovalBody = 1 << 10

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handlers struct {
	S      *app.ReviewService
	Health func(ctx context.Context) error // nil means always healthy
}

type meta struct {
	Total     int       `json:"total"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    meta `json:"meta"`
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type approvalBody struct {
	Approved *bool `json:"approved" validate:"required"`
}

type approvalResult struct {
	ID       int64 `json:"id"`
	Approved *bool `json:"approved,omitempty"`
	Reset    bool  `json:"reset,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.health)
	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/reviews", h.allReviews)
		r.Get("/reviews/hostaway", h.hostawayReviews)
		r.Get("/reviews/google", h.googleReviews)
		r.Put("/reviews/{id}/approval", h.setApproval)
		r.Delete("/reviews/{id}/approval", h.resetApproval)
		r.Get("/dashboard", h.dashboard)
		r.Get("/properties", h.properties)
	})
}

/********** response helpers **********/

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeOK(w http.ResponseWriter, data any, total int, source, notes string) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Meta:    meta{Total: total, Source: source, Timestamp: time.Now().UTC(), Notes: notes},
	})
}

// writeFail maps bad input to 400 and everything else to 500.
func writeFail(w http.ResponseWriter, err error, title string) {
	status := http.StatusInternalServerError
	if errors.Is(err, app.ErrInvalidInput) {
		status, title = http.StatusBadRequest, "Invalid request"
	} else {
		log.Error().Err(err).Msg(title)
	}
	writeJSON(w, status, failure{Success: false, Error: title, Message: err.Error()})
}

// calcETag hashes the JSON form of v.
func calcETag(v any) string {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag")
		return ""
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

func mockParam(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("mock"))
	return b
}

func reviewID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", app.ErrInvalidInput)
	}
	return id, nil
}

/********** handlers **********/

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health(r.Context()); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) hostawayReviews(w http.ResponseWriter, r *http.Request) {
	b, err := h.S.Hostaway(r.Context(), domain.FetchOptions{
		Mock:       mockParam(r),
		PropertyID: r.URL.Query().Get("propertyId"),
	})
	if err != nil {
		writeFail(w, err, "Failed to fetch reviews from Hostaway")
		return
	}
	writeOK(w, b.Reviews, len(b.Reviews), b.Source, b.Notes)
}

func (h *Handlers) googleReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b, err := h.S.Google(r.Context(), domain.FetchOptions{
		Mock:         mockParam(r),
		PlaceID:      q.Get("placeId"),
		PropertyName: q.Get("propertyName"),
	})
	if err != nil {
		writeFail(w, err, "Failed to fetch reviews from Google Places API")
		return
	}
	writeOK(w, b.Reviews, len(b.Reviews), b.Source, b.Notes)
}

func (h *Handlers) allReviews(w http.ResponseWriter, r *http.Request) {
	b, err := h.S.All(r.Context(), domain.FetchOptions{
		Mock:    mockParam(r),
		PlaceID: r.URL.Query().Get("placeId"),
	})
	if err != nil {
		writeFail(w, err, "Failed to fetch reviews")
		return
	}
	writeOK(w, b.Reviews, len(b.Reviews), b.Source, b.Notes)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := app.ParseFilter(q.Get("property"), q.Get("status"), q.Get("sort"))
	if err != nil {
		writeFail(w, err, "Invalid request")
		return
	}
	d, src, err := h.S.Dashboard(r.Context(), f, mockParam(r))
	if err != nil {
		writeFail(w, err, "Failed to load dashboard")
		return
	}
	writeOK(w, d, len(d.Reviews), src, "")
}

func (h *Handlers) properties(w http.ResponseWriter, r *http.Request) {
	props, src, err := h.S.Public(r.Context(), mockParam(r))
	if err != nil {
		writeFail(w, err, "Failed to load properties")
		return
	}

	// the envelope carries a timestamp, so the tag covers the data only
	etag := calcETag(props)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	writeOK(w, props, len(props), src, "")
}

func (h *Handlers) setApproval(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		writeFail(w, err, "Invalid request")
		return
	}

	var body approvalBody
	dec := json.NewDecoder(io.LimitReader(r.Body, maxApprovalBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeFail(w, fmt.Errorf(`%w: body must be {"approved": true|false}`, app.ErrInvalidInput), "Invalid request")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeFail(w, fmt.Errorf("%w: %v", app.ErrInvalidInput, err), "Invalid request")
		return
	}

	if err := h.S.SetApproval(r.Context(), id, *body.Approved); err != nil {
		writeFail(w, err, "Failed to update approval")
		return
	}
	writeOK(w, approvalResult{ID: id, Approved: body.Approved}, 1, "store", "")
}

func (h *Handlers) resetApproval(w http.ResponseWriter, r *http.Request) {
	id, err := reviewID(r)
	if err != nil {
		writeFail(w, err, "Invalid request")
		return
	}
	if err := h.S.ResetApproval(r.Context(), id); err != nil {
		writeFail(w, err, "Failed to reset approval")
		return
	}
	writeOK(w, approvalResult{ID: id, Reset: true}, 1, "store", "")
}
