package upstream

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"
)

// AcceptEncoding is sent explicitly, so the transport does not decompress
// for us; ReadBody does.
const AcceptEncoding = "gzip, br"

// NewHTTPClient returns a client with an explicit overall timeout.
// There are no retries: one failed call fails the request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: timeout,
	}
}

// NewLimiter builds the shared outbound limiter; rps <= 0 means 5.
func NewLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		rps = 5
	}
	return rate.NewLimiter(rate.Limit(rps), rps)
}

// MaxBodyBytes caps a decoded success body.
const MaxBodyBytes = 8 << 20

var ErrBodyTooLarge = errors.New("upstream body exceeds limit")

// ReadBody reads and decompresses an HTTP response body, failing with
// ErrBodyTooLarge past MaxBodyBytes of decoded data.
func ReadBody(resp *http.Response) ([]byte, error) {
	r, closeFn, err := decoded(resp)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	b, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return b, nil
}

// ErrorBody returns at most 4 KiB of a failed response for diagnostics.
func ErrorBody(resp *http.Response) string {
	r, closeFn, err := decoded(resp)
	if err != nil {
		return ""
	}
	defer closeFn()
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
}

func decoded(resp *http.Response) (io.Reader, func(), error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip reader: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case "br":
		return brotli.NewReader(resp.Body), func() {}, nil
	default:
		return resp.Body, func() {}, nil
	}
}

// Wait blocks on the limiter unless it is nil.
func Wait(ctx context.Context, rl *rate.Limiter) error {
	if rl == nil {
		return nil
	}
	return rl.Wait(ctx)
}
