package sheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"salon_site/internal/adapters/observability"
	"salon_site/internal/adapters/upstream"
	"salon_site/internal/domain"
)

// DefaultCSVURL is the published price sheet (first tab, CSV export).
const DefaultCSVURL = "https://docs.google.com/spreadsheets/d/1wAvJhXwHLoBVUqfaj55gOPVKmwmdd4Vemo-61IeWrfg/export?format=csv&gid=0"

type Client struct {
	url string
	hc  *http.Client
	rl  *rate.Limiter
}

func New(csvURL string, hc *http.Client, rl *rate.Limiter) *Client {
	if csvURL == "" {
		csvURL = DefaultCSVURL
	}
	if hc == nil {
		hc = upstream.NewHTTPClient(0)
	}
	return &Client{url: csvURL, hc: hc, rl: rl}
}

func (c *Client) FetchCSV(ctx context.Context) (string, error) {
	if err := upstream.Wait(ctx, c.rl); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("Accept-Encoding", upstream.AcceptEncoding)
	req.Header.Set("User-Agent", "salon-site/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("sheets", "csv_export", 0, time.Since(start))
		return "", fmt.Errorf("sheets request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("sheets", "csv_export", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.UpstreamError{
			Service: "sheets",
			Status:  resp.StatusCode,
			Body:    upstream.ErrorBody(resp),
		}
	}

	b, err := upstream.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("sheets read body: %w", err)
	}
	return string(b), nil
}
