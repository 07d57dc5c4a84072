package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/hausbot/internal/external"
	"github.com/example/hausbot/internal/slack"
)

type fakeTrivia struct {
	q   *external.TriviaQuestion
	err error
}

func (f *fakeTrivia) Question(ctx context.Context) (*external.TriviaQuestion, error) {
	return f.q, f.err
}

func TestTriviaBuildsCard(t *testing.T) {
	session := NewSession()
	h := NewTriviaHandler(&fakeTrivia{q: &external.TriviaQuestion{
		Category:  "Science",
		Question:  "What is H2O?",
		Correct:   "Water",
		Incorrect: []string{"Fire", "Earth", "Air"},
	}}, session)

	reply, err := h.Execute(context.Background(), &Request{Tokens: []string{"trivia"}, User: "alice"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if reply.Message.ResponseType != slack.ResponseInChannel {
		t.Errorf("response type = %q, want in_channel", reply.Message.ResponseType)
	}

	text := reply.Message.Text
	for _, want := range []string{"Science", "What is H2O?", "A:", "B:", "C:", "D:", "Water", "Fire", "Earth", "Air"} {
		if !strings.Contains(text, want) {
			t.Errorf("card missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "E:") {
		t.Errorf("card has more than four options:\n%s", text)
	}

	answer, ok := session.TakeAnswer()
	if !ok || answer != "Water" {
		t.Errorf("session answer = %q, %v; want Water, true", answer, ok)
	}
}

func TestTriviaWrongAnswerCount(t *testing.T) {
	session := NewSession()
	session.SetAnswer("pending")
	h := NewTriviaHandler(&fakeTrivia{q: &external.TriviaQuestion{
		Correct:   "Water",
		Incorrect: []string{"Fire"},
	}}, session)

	_, err := h.Execute(context.Background(), &Request{Tokens: []string{"trivia"}, User: "alice"})
	if err == nil {
		t.Fatal("Execute() should error when the provider sends fewer than four answers")
	}
	if answer, ok := session.TakeAnswer(); !ok || answer != "pending" {
		t.Errorf("provider contract violation must leave the pending answer alone, got %q, %v", answer, ok)
	}
}

func TestTriviaProviderFailure(t *testing.T) {
	session := NewSession()
	h := NewTriviaHandler(&fakeTrivia{err: errors.New("boom")}, session)

	_, err := h.Execute(context.Background(), &Request{Tokens: []string{"trivia"}, User: "alice"})
	if err == nil {
		t.Fatal("Execute() should propagate provider failure")
	}
	if _, ok := session.TakeAnswer(); ok {
		t.Error("provider failure must not store an answer")
	}
}

func TestSolve(t *testing.T) {
	session := NewSession()
	session.SetAnswer("Water")
	h := NewSolveHandler(session)

	reply, err := h.Execute(context.Background(), &Request{Tokens: []string{"solve"}, User: "alice"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply.Message.Text, "Water") {
		t.Errorf("reply %q should contain the answer", reply.Message.Text)
	}

	// The slot is consumed: a second solve has nothing to report.
	reply, err = h.Execute(context.Background(), &Request{Tokens: []string{"solve"}, User: "alice"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if reply.Message.ResponseType != slack.ResponseEphemeral {
		t.Errorf("second solve should be an ephemeral nothing-to-solve reply, got %q", reply.Message.ResponseType)
	}
}

func TestTriviaOverwritesPendingAnswer(t *testing.T) {
	session := NewSession()
	session.SetAnswer("old")
	session.SetAnswer("new")
	answer, ok := session.TakeAnswer()
	if !ok || answer != "new" {
		t.Errorf("TakeAnswer() = %q, %v; the slot holds only the latest answer", answer, ok)
	}
}
