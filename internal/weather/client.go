package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const geocodeUserAgent = "ConteudoOH/1.0 (clima@conteudooh.local)"

// Point is one forecast timeline entry. Values may be missing or null.
type Point struct {
	Time   string              `json:"time"`
	Values map[string]*float64 `json:"values"`
}

// Value returns the first present value among keys.
func (p Point) Value(keys ...string) *float64 {
	for _, k := range keys {
		if v, ok := p.Values[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Timelines is the raw forecast payload.
type Timelines struct {
	Current []Point `json:"current"`
	Hourly  []Point `json:"hourly"`
	Daily   []Point `json:"daily"`
}

type forecastResponse struct {
	Timelines struct {
		Current []Point `json:"current"`
		Hourly  []Point `json:"hourly"`
		Hour    []Point `json:"1h"`
		Daily   []Point `json:"daily"`
		Day     []Point `json:"1d"`
	} `json:"timelines"`
}

// ForecastClient calls the Tomorrow.io v4 forecast API.
type ForecastClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewForecastClient(endpoint, apiKey string, timeout time.Duration) *ForecastClient {
	return &ForecastClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Forecast fetches current, hourly and daily timelines in metric units.
func (c *ForecastClient) Forecast(ctx context.Context, lat, lon float64) (*Timelines, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather api key is not configured")
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%s,%s", formatCoord(lat), formatCoord(lon)))
	q.Set("apikey", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	t := &Timelines{
		Current: body.Timelines.Current,
		Hourly:  body.Timelines.Hourly,
		Daily:   body.Timelines.Daily,
	}
	if len(t.Hourly) == 0 {
		t.Hourly = body.Timelines.Hour
	}
	if len(t.Daily) == 0 {
		t.Daily = body.Timelines.Day
	}
	return t, nil
}

// Place is a geocoded location.
type Place struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"nome_formatado"`
	FullName    string  `json:"nome_completo"`
}

// GeocodeClient resolves city names through Nominatim.
type GeocodeClient struct {
	endpoint string
	client   *http.Client
}

func NewGeocodeClient(endpoint string, timeout time.Duration) *GeocodeClient {
	return &GeocodeClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode returns the best match for city, or ErrLocationNotFound.
func (c *GeocodeClient) Geocode(ctx context.Context, city, state, country string) (*Place, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("format", "json")
	q.Set("limit", "1")
	if state != "" {
		q.Set("state", state)
	}
	if country != "" {
		q.Set("country", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", geocodeUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	name := city
	if state != "" {
		name = city + " - " + state
	}
	full := results[0].DisplayName
	if full == "" {
		full = city
	}

	return &Place{Latitude: lat, Longitude: lon, DisplayName: name, FullName: full}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
