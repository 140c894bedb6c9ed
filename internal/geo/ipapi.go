package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// IPAPIProvider queries the ipapi.co JSON API.
type IPAPIProvider struct {
	endpoint string
	client   *http.Client
}

// NewIPAPIProvider creates a provider for endpoint (e.g. https://ipapi.co)
// bounded by timeout per lookup.
func NewIPAPIProvider(endpoint string, timeout time.Duration) *IPAPIProvider {
	return &IPAPIProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *IPAPIProvider) Name() string { return "ipapi" }

type ipapiResponse struct {
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
	CountryName string `json:"country_name"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Org         string `json:"org"`
	Timezone    string `json:"timezone"`
}

func (p *IPAPIProvider) Lookup(ctx context.Context, ip string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", p.endpoint, ip), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build geo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geo provider returned status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode geo response: %w", err)
	}
	if body.Error {
		return Result{}, fmt.Errorf("geo provider error: %s", body.Reason)
	}

	return Result{
		Country:  optional(body.CountryName),
		City:     optional(body.City),
		State:    optional(body.Region),
		ISP:      optional(body.Org),
		Timezone: optional(body.Timezone),
	}, nil
}
