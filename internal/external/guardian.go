package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Article is one search hit.
type Article struct {
	Title string
	URL   string
}

// ArticleSearcher finds news articles matching a free-text query.
type ArticleSearcher interface {
	Search(ctx context.Context, query string) ([]Article, error)
}

// GuardianClient talks to the Guardian content API.
type GuardianClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGuardianClient creates a searcher. An empty baseURL selects the
// public content API.
func NewGuardianClient(baseURL, apiKey string, timeout time.Duration) *GuardianClient {
	if baseURL == "" {
		baseURL = "https://content.guardianapis.com"
	}
	return &GuardianClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type guardianResponse struct {
	Response struct {
		Status  string `json:"status"`
		Results []struct {
			WebTitle string `json:"webTitle"`
			WebURL   string `json:"webUrl"`
		} `json:"results"`
	} `json:"response"`
}

// Search returns the articles matching query.
func (c *GuardianClient) Search(ctx context.Context, query string) ([]Article, error) {
	u := fmt.Sprintf("%s/search?api-key=%s&q=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article API returned %d", resp.StatusCode)
	}

	var parsed guardianResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if parsed.Response.Status != "ok" {
		return nil, fmt.Errorf("article API status %q", parsed.Response.Status)
	}

	articles := make([]Article, 0, len(parsed.Response.Results))
	for _, r := range parsed.Response.Results {
		articles = append(articles, Article{Title: r.WebTitle, URL: r.WebURL})
	}
	return articles, nil
}
