// internal/adapters/places/client.go
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"salon_site/internal/adapters/observability"
	"salon_site/internal/adapters/upstream"
	"salon_site/internal/domain"
)

// FieldMask names exactly the fields the reviews proxy reads. Google bills
// Place Details by the fields requested, so it must stay in sync with
// domain.PlaceDetails.
const FieldMask = "displayName,rating,userRatingCount," +
	"reviews.rating,reviews.text,reviews.relativePublishTimeDescription," +
	"reviews.authorAttribution.displayName,reviews.authorAttribution.photoUri,reviews.authorAttribution.uri"

const DefaultBaseURL = "https://places.googleapis.com/v1"

type Client struct {
	base string
	lang string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, lang string, hc *http.Client, rl *rate.Limiter) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if hc == nil {
		hc = upstream.NewHTTPClient(0)
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		lang: lang,
		hc:   hc,
		rl:   rl,
	}
}

// PlaceDetails performs exactly one GET; there are no retries.
// The key travels in X-Goog-Api-Key so it never shows up in URLs or logs.
func (c *Client) PlaceDetails(ctx context.Context, apiKey, placeID string) (domain.PlaceDetails, error) {
	var out domain.PlaceDetails

	if err := upstream.Wait(ctx, c.rl); err != nil {
		return out, err
	}

	u := fmt.Sprintf("%s/places/%s", c.base, url.PathEscape(placeID))
	if c.lang != "" {
		u += "?languageCode=" + url.QueryEscape(c.lang)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("X-Goog-Api-Key", apiKey)
	req.Header.Set("X-Goog-FieldMask", FieldMask)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", upstream.AcceptEncoding)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "salon-site/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", "place_details", 0, time.Since(start))
		return out, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", "place_details", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &domain.UpstreamError{
			Service: "places",
			Status:  resp.StatusCode,
			Body:    upstream.ErrorBody(resp),
		}
	}

	b, err := upstream.ReadBody(resp)
	if err != nil {
		return out, fmt.Errorf("places read body: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("places decode: %w", err)
	}
	return out, nil
}
