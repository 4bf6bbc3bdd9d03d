package observability_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salon_site/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they show up in the exposition
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("places", "place_details", 200, 40*time.Millisecond)
	observability.ObserveProxyError("prices", "no_data")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"salon_http_requests_total",
		"salon_external_requests_total",
		`salon_proxy_errors_total{kind="no_data",proxy="prices"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestMetricsServerServesRegistry(t *testing.T) {
	reg := observability.InitRegistry()
	srv := observability.NewMetricsServer(":0", reg)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLoggerTo(&buf, "prod")
	l.Info().Str("proxy", "reviews").Msg("hello")
	if !strings.Contains(buf.String(), `"proxy":"reviews"`) {
		t.Fatalf("expected JSON field in %q", buf.String())
	}
}
