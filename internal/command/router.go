package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/hausbot/internal/slack"
)

// Request carries one parsed slash-command invocation.
type Request struct {
	Tokens []string
	User   string // invoking user's handle, without the @ prefix
}

// Rest joins the tokens after the command word back into free text.
func (r *Request) Rest() string {
	if len(r.Tokens) < 2 {
		return ""
	}
	return strings.Join(r.Tokens[1:], " ")
}

// Reply is what a handler wants delivered to the chat platform.
type Reply struct {
	Message *slack.Message
	// Deferred replies are posted to the response URL instead of the
	// HTTP response body, so they carry no attribution to the sender.
	Deferred bool
}

// Handler executes one top-level command.
type Handler interface {
	// Name returns the first token this handler claims.
	Name() string
	// Execute runs the command. A returned error means the command
	// failed outright (storage, upstream provider); user mistakes are
	// reported as ephemeral replies, not errors.
	Execute(ctx context.Context, req *Request) (*Reply, error)
}

// Router dispatches the first token to the matching handler.
type Router struct {
	handlers map[string]Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Register adds a handler under its own name.
func (r *Router) Register(h Handler) {
	r.handlers[h.Name()] = h
}

// Alias routes an additional first token to an already registered
// handler.
func (r *Router) Alias(alias, name string) {
	if h, ok := r.handlers[name]; ok {
		r.handlers[alias] = h
	}
}

// Dispatch tokenizes the raw text and runs the matching handler.
// Unrecognized or empty input yields an ephemeral reply, never an
// error.
func (r *Router) Dispatch(ctx context.Context, text, user string) (*Reply, error) {
	tokens := Tokenize(strings.ToLower(text), user)
	if len(tokens) == 0 {
		return ephemeral("Du hast gar nichts gesagt."), nil
	}

	h, ok := r.handlers[tokens[0]]
	if !ok {
		return ephemeral(fmt.Sprintf("Unbekanntes Kommando %q.", tokens[0])), nil
	}
	return h.Execute(ctx, &Request{Tokens: tokens, User: user})
}

func ephemeral(text string) *Reply {
	return &Reply{Message: slack.Ephemeral(text)}
}

func inChannel(text string) *Reply {
	return &Reply{Message: slack.InChannel(text)}
}

func deferred(text string) *Reply {
	return &Reply{Message: slack.InChannel(text), Deferred: true}
}
