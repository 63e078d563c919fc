// Package teams talks to the team directory API and ranks teams for the
// "find a team near you" search. The directory is an external collaborator;
// when it is unreachable the client serves a bundled sample directory so the
// finder still renders something useful.
package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/flyballhub/hubsite/geo"
)

// Team is one directory record.
type Team struct {
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	LogoURL      string            `json:"logo_url"`
	LocationName string            `json:"location_name"`
	Country      string            `json:"country"`
	Lat          *float64          `json:"location_latitude"`
	Lng          *float64          `json:"location_longitude"`
	Leagues      []string          `json:"leagues"`
	SocialLinks  map[string]string `json:"social_links"`
	PrimaryColor string            `json:"primary_color"`
}

// HasLocation reports whether the team carries usable coordinates.
func (t Team) HasLocation() bool {
	return t.Lat != nil && t.Lng != nil
}

// Ranked is a team with an optional computed distance from a search origin.
type Ranked struct {
	Team
	Distance *float64
}

// Client fetches the team directory.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a directory client for the given API origin, e.g.
// "https://app.flyballhub.com".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches up to limit teams from the directory.
func (c *Client) List(ctx context.Context, limit int) ([]Team, error) {
	u := fmt.Sprintf("%s/api/v1/teams?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("teams: directory returned %d", resp.StatusCode)
	}
	var payload struct {
		Data []Team `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// ListOrFallback fetches the directory, falling back to the bundled sample
// set on any failure. The bool reports whether live data was returned.
func (c *Client) ListOrFallback(ctx context.Context, limit int) ([]Team, bool) {
	teams, err := c.List(ctx, limit)
	if err != nil || len(teams) == 0 {
		return SampleTeams(), false
	}
	return teams, true
}

// Rank filters to teams with coordinates, computes distances from origin
// when one is given, and sorts: distance-bearing entries ascending first,
// the rest alphabetically after them.
func Rank(list []Team, origin *geo.Coords) []Ranked {
	ranked := make([]Ranked, 0, len(list))
	for _, t := range list {
		if !t.HasLocation() {
			continue
		}
		r := Ranked{Team: t}
		if origin != nil {
			d := geo.DistanceKm(origin.Lat, origin.Lng, *t.Lat, *t.Lng)
			r.Distance = &d
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.Distance != nil && b.Distance != nil:
			return *a.Distance < *b.Distance
		case a.Distance != nil:
			return true
		case b.Distance != nil:
			return false
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return ranked
}

// SampleTeams returns the fallback directory used when the API is down.
func SampleTeams() []Team {
	f := func(v float64) *float64 { return &v }
	return []Team{
		{
			Name: "Thames Valley Racers", Slug: "thames-valley-racers",
			LocationName: "Reading", Country: "GB",
			Lat: f(51.4543), Lng: f(-0.9781),
			Leagues: []string{"BFA"},
		},
		{
			Name: "Northern Lights Flyball", Slug: "northern-lights-flyball",
			LocationName: "Leeds", Country: "GB",
			Lat: f(53.8008), Lng: f(-1.5491),
			Leagues: []string{"BFA"},
		},
		{
			Name: "Dublin Dashers", Slug: "dublin-dashers",
			LocationName: "Dublin", Country: "IE",
			Lat: f(53.3498), Lng: f(-6.2603),
			Leagues: []string{"IFF"},
		},
		{
			Name: "Highland Hurricanes", Slug: "highland-hurricanes",
			LocationName: "Inverness", Country: "GB",
			Lat: f(57.4778), Lng: f(-4.2247),
			Leagues: []string{"BFA"},
		},
	}
}
