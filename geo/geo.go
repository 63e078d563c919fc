// Package geo provides geocoding against a Nominatim-style search endpoint
// and great-circle distance math for the team finder.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const earthRadiusKm = 6371

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64
	Lng float64
}

// Geocoder resolves free-form location queries to coordinates. Every failure
// mode — malformed query, no match, network error, bad payload — collapses
// into a nil result; callers cannot and should not distinguish them.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// GeocoderOption configures a Geocoder.
type GeocoderOption func(*Geocoder)

// WithBaseURL overrides the search endpoint (used by tests).
func WithBaseURL(u string) GeocoderOption {
	return func(g *Geocoder) { g.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GeocoderOption {
	return func(g *Geocoder) { g.client = c }
}

// WithRateLimit overrides the outbound request limiter.
func WithRateLimit(l *rate.Limiter) GeocoderOption {
	return func(g *Geocoder) { g.limiter = l }
}

// NewGeocoder creates a Geocoder for the public Nominatim instance. Outbound
// requests are throttled to one per second per the provider's usage policy.
func NewGeocoder(userAgent string, opts ...GeocoderOption) *Geocoder {
	g := &Geocoder{
		baseURL:   "https://nominatim.openstreetmap.org/search",
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves query to coordinates, or nil on any failure.
func (g *Geocoder) Geocode(ctx context.Context, query string) *Coords {
	if query == "" {
		return nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil
	}

	u := fmt.Sprintf("%s?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil
	}
	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	return &Coords{Lat: lat, Lng: lng}
}

// DistanceKm computes the haversine great-circle distance in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FormatDistance renders a distance for display: meters under 1km, one
// decimal under 10km, whole kilometers beyond.
func FormatDistance(km float64) string {
	switch {
	case km < 1:
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	case km < 10:
		return fmt.Sprintf("%.1fkm", km)
	default:
		return fmt.Sprintf("%dkm", int(math.Round(km)))
	}
}

// CountryFlag converts a 2-letter country code to its emoji flag, or ""
// for anything that is not exactly two letters.
func CountryFlag(code string) string {
	if len(code) != 2 {
		return ""
	}
	const offset = 127397 // regional indicator symbol offset
	a, b := code[0], code[1]
	upperA := a &^ 0x20
	upperB := b &^ 0x20
	if upperA < 'A' || upperA > 'Z' || upperB < 'A' || upperB > 'Z' {
		return ""
	}
	return string([]rune{rune(upperA) + offset, rune(upperB) + offset})
}
