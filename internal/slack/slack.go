// Package slack builds the two reply shapes of the chat platform and
// delivers deferred replies to a caller-supplied response URL.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response visibility, as the platform expects it on the wire.
const (
	ResponseEphemeral = "ephemeral"
	ResponseInChannel = "in_channel"
)

// Attachment is a secondary text block below the main message.
type Attachment struct {
	Text string `json:"text"`
}

// Message is one slash-command reply payload.
type Message struct {
	ResponseType string       `json:"response_type"`
	Text         string       `json:"text"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

// Ephemeral builds a reply visible only to the invoking user.
func Ephemeral(text string) *Message {
	return &Message{ResponseType: ResponseEphemeral, Text: text}
}

// InChannel builds a reply visible to the whole channel.
func InChannel(text string) *Message {
	return &Message{ResponseType: ResponseInChannel, Text: text}
}

// WithAttachment appends an attachment block and returns the message
// for chaining.
func (m *Message) WithAttachment(text string) *Message {
	m.Attachments = append(m.Attachments, Attachment{Text: text})
	return m
}

// Client posts deferred replies to a response URL. Deferred delivery is
// how a reply appears in the channel without attribution to the
// invoking user.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Respond posts the message to url as JSON.
func (c *Client) Respond(ctx context.Context, url string, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("response URL returned %d: %s", resp.StatusCode, b)
	}
	return nil
}
