// Package external holds thin HTTP clients for the third-party
// providers the command handlers consume: trivia questions, reverse
// geocoding, currency rates and article search. Each provider sits
// behind a small interface so handlers can be tested against fakes.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"
)

// TriviaQuestion is one multiple-choice question. Text fields are
// already HTML-entity decoded.
type TriviaQuestion struct {
	Category  string
	Question  string
	Correct   string
	Incorrect []string
}

// TriviaProvider fetches one fresh question.
type TriviaProvider interface {
	Question(ctx context.Context) (*TriviaQuestion, error)
}

// OpenTriviaClient talks to an Open Trivia DB compatible API.
type OpenTriviaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenTriviaClient creates a client. An empty baseURL selects the
// public opentdb.com API.
func NewOpenTriviaClient(baseURL string, timeout time.Duration) *OpenTriviaClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	return &OpenTriviaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type openTriviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Question requests a single multiple-choice question.
func (c *OpenTriviaClient) Question(ctx context.Context) (*TriviaQuestion, error) {
	url := c.baseURL + "/api.php?amount=1&type=multiple"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating trivia request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching trivia question: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia API returned %d", resp.StatusCode)
	}

	var parsed openTriviaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding trivia response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("trivia API returned no results (code %d)", parsed.ResponseCode)
	}

	r := parsed.Results[0]
	q := &TriviaQuestion{
		Category: html.UnescapeString(r.Category),
		Question: html.UnescapeString(r.Question),
		Correct:  html.UnescapeString(r.CorrectAnswer),
	}
	for _, a := range r.IncorrectAnswers {
		q.Incorrect = append(q.Incorrect, html.UnescapeString(a))
	}
	return q, nil
}
