// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"salon_site/internal/adapters/observability"
	"salon_site/internal/app"
	"salon_site/internal/domain"
)

type Handlers struct {
	Reviews *app.ReviewsService
	Prices  *app.PriceService
	// PricesMaxAge is the max-age advised to downstream caches, in seconds.
	PricesMaxAge int
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Get("/api/google-reviews", h.googleReviews)
	s.mux.Get("/api/prices", h.prices)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiError{Error: msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// failure maps an error to a status and a caller-safe message. Internal
// details never leave the process.
func failure(proxy string, err error, upstreamMsg string) (int, string) {
	var ue *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		observability.ObserveProxyError(proxy, "config")
		log.Error().Str("proxy", proxy).Msg("missing GOOGLE_MAPS_API_KEY or GOOGLE_PLACE_ID")
		return http.StatusInternalServerError, "API configuration missing"
	case errors.As(err, &ue):
		observability.ObserveProxyError(proxy, "upstream")
		log.Error().Str("proxy", proxy).
			Str("service", ue.Service).
			Int("upstream_status", ue.Status).
			Str("upstream_body", ue.Body).
			Msg("upstream fetch failed")
		return upstreamStatus(ue.Status), upstreamMsg
	case errors.Is(err, domain.ErrNoData):
		observability.ObserveProxyError(proxy, "no_data")
		log.Warn().Str("proxy", proxy).Msg("price sheet has no data rows")
		return http.StatusNotFound, "No data found in sheet"
	default:
		observability.ObserveProxyError(proxy, "internal")
		log.Error().Err(err).Str("proxy", proxy).Msg("unexpected proxy failure")
		return http.StatusInternalServerError, "Internal server error"
	}
}

// upstreamStatus propagates the upstream code when it is a usable error
// status; anything else (3xx, 1xx) becomes 502.
func upstreamStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

func (h *Handlers) googleReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.PlaceReviews(r.Context())
	if err != nil {
		status, msg := failure("reviews", err, "Failed to fetch reviews")
		writeError(w, status, msg)
		return
	}

	body, err := json.Marshal(out)
	if err != nil {
		status, msg := failure("reviews", err, "")
		writeError(w, status, msg)
		return
	}

	// the proxy is the freshness boundary; nothing downstream may cache it
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write googleReviews body")
	}
}

func (h *Handlers) prices(w http.ResponseWriter, r *http.Request) {
	out, err := h.Prices.Catalog(r.Context())
	if err != nil {
		status, msg := failure("prices", err, "Failed to fetch price data")
		writeError(w, status, msg)
		return
	}

	etag, body, err := calcETagAndBody(out)
	if err != nil {
		status, msg := failure("prices", err, "")
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.PricesMaxAge))
	w.Header().Set("ETag", etag)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write prices body")
	}
}
