package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CurrencyConverter converts an amount between two currencies.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// FixerClient talks to a fixer.io compatible exchange-rate API.
type FixerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFixerClient creates a converter. An empty baseURL selects the
// public fixer API.
func NewFixerClient(baseURL string, timeout time.Duration) *FixerClient {
	if baseURL == "" {
		baseURL = "http://api.fixer.io"
	}
	return &FixerClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Convert fetches the latest rate for the currency pair and applies it.
// Currency codes are case-insensitive.
func (c *FixerClient) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	url := fmt.Sprintf("%s/latest?symbols=%s&base=%s", c.baseURL, to, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching exchange rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decoding rate response: %w", err)
	}
	rate, ok := parsed.Rates[to]
	if !ok {
		return 0, fmt.Errorf("no rate for %s/%s", from, to)
	}
	return rate * amount, nil
}
