package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestDistanceKmIdentity(t *testing.T) {
	if d := DistanceKm(51.5, -0.12, 51.5, -0.12); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := DistanceKm(51.5074, -0.1278, 53.4808, -2.2426)
	b := DistanceKm(53.4808, -2.2426, 51.5074, -0.1278)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestDistanceKmKnownPair(t *testing.T) {
	// London to Manchester is roughly 262km great-circle.
	d := DistanceKm(51.5074, -0.1278, 53.4808, -2.2426)
	if d < 255 || d > 270 {
		t.Errorf("London-Manchester = %fkm, want ~262km", d)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0.042, "42m"},
		{0.9994, "999m"},
		{1.0, "1.0km"},
		{5.25, "5.2km"},
		{9.99, "10.0km"},
		{10, "10km"},
		{262.4, "262km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.km); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.km, got, tt.want)
		}
	}
}

func TestCountryFlag(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"GB", "🇬🇧"},
		{"ie", "🇮🇪"},
		{"Us", "🇺🇸"},
		{"", ""},
		{"G", ""},
		{"GBR", ""},
		{"1A", ""},
	}
	for _, tt := range tests {
		if got := CountryFlag(tt.code); got != tt.want {
			t.Errorf("CountryFlag(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func testGeocoder(baseURL string) *Geocoder {
	return NewGeocoder("hubsite-test",
		WithBaseURL(baseURL),
		WithRateLimit(rate.NewLimiter(rate.Inf, 1)))
}

func TestGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Reading, UK" {
			t.Errorf("query = %q, want %q", got, "Reading, UK")
		}
		if r.Header.Get("User-Agent") != "hubsite-test" {
			t.Errorf("missing User-Agent header")
		}
		w.Write([]byte(`[{"lat": "51.4543", "lon": "-0.9781"}]`))
	}))
	defer srv.Close()

	got := testGeocoder(srv.URL).Geocode(context.Background(), "Reading, UK")
	if got == nil {
		t.Fatal("Geocode returned nil for a valid response")
	}
	if got.Lat != 51.4543 || got.Lng != -0.9781 {
		t.Errorf("coords = %+v, want {51.4543 -0.9781}", got)
	}
}

func TestGeocodeFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty result set", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not": "a list"}`))
		}},
		{"non-numeric coordinates", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat": "north", "lon": "west"}]`))
		}},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(tt.handler)
		got := testGeocoder(srv.URL).Geocode(context.Background(), "somewhere")
		srv.Close()
		if got != nil {
			t.Errorf("%s: Geocode = %+v, want nil", tt.name, got)
		}
	}
}

func TestGeocodeEmptyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty query should not reach the network")
	}))
	defer srv.Close()

	if got := testGeocoder(srv.URL).Geocode(context.Background(), ""); got != nil {
		t.Errorf("Geocode(\"\") = %+v, want nil", got)
	}
}
