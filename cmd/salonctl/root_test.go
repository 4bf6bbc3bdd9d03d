package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon_site/internal/domain"
)

func fakeUpstreams(t *testing.T, sheetStatus int) {
	t.Helper()
	g := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"displayName":{"text":"Salon"},"reviews":[{"rating":5,"text":{"text":"ok"}}]}`)
	}))
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(sheetStatus)
		_, _ = io.WriteString(w, "a,b,c,d,e,f\nSaç,Kesim,30 dk,500 TL,,1\n")
	}))
	t.Cleanup(g.Close)
	t.Cleanup(s.Close)

	t.Setenv("GOOGLE_PLACES_BASE_URL", g.URL)
	t.Setenv("GOOGLE_MAPS_API_KEY", "k")
	t.Setenv("GOOGLE_PLACE_ID", "p1")
	t.Setenv("PRICES_CSV_URL", s.URL)
	t.Setenv("APP_ENV", "test")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPricesCommand_PrintsCatalog(t *testing.T) {
	fakeUpstreams(t, http.StatusOK)

	out, err := run(t, "prices", "--compact")
	if err != nil {
		t.Fatalf("prices: %v", err)
	}
	var cat domain.PriceCatalog
	if err := json.Unmarshal([]byte(out), &cat); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if len(cat.Items) != 1 || cat.Items[0].ServiceName != "Kesim" {
		t.Fatalf("unexpected catalog: %+v", cat)
	}
}

func TestReviewsCommand_PlaceIDFlag(t *testing.T) {
	fakeUpstreams(t, http.StatusOK)

	out, err := run(t, "reviews", "--place-id", "p-flag")
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	var pr domain.PlaceReviews
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if pr.PlaceID != "p-flag" || pr.PlaceName != "Salon" || len(pr.Reviews) != 1 {
		t.Fatalf("unexpected reviews: %+v", pr)
	}
}

func TestCheckCommand_FailsWhenOneUpstreamFails(t *testing.T) {
	fakeUpstreams(t, http.StatusServiceUnavailable)

	_, err := run(t, "check", "--place-id", "p1")
	if err == nil {
		t.Fatal("want error from failing sheet")
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Status != http.StatusServiceUnavailable {
		t.Fatalf("want upstream 503, got %v", err)
	}
}
