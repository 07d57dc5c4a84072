package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Geocoder resolves coordinates to a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// GoogleGeocoder talks to the Google Maps reverse geocoding API.
type GoogleGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeocoder creates a geocoder. An empty baseURL selects the
// public Maps API.
func NewGoogleGeocoder(baseURL string, timeout time.Duration) *GoogleGeocoder {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	return &GoogleGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// ReverseGeocode returns the formatted address of the first result.
func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/maps/api/geocode/json?latlng=%f,%f&sensor=true", g.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocoding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode API returned %d", resp.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding geocode response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", fmt.Errorf("no geocode result for %f,%f", lat, lon)
	}
	return parsed.Results[0].FormattedAddress, nil
}
