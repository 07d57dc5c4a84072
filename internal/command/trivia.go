package command

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/example/hausbot/internal/external"
)

// Letters for the four answer slots.
var optionLetters = []string{"A", "B", "C", "D"}

// TriviaHandler fetches a multiple-choice question and parks the
// correct answer in the session until somebody asks to solve it.
type TriviaHandler struct {
	provider external.TriviaProvider
	session  *Session
	shuffle  func(n int, swap func(i, j int))
}

// NewTriviaHandler creates the handler.
func NewTriviaHandler(provider external.TriviaProvider, session *Session) *TriviaHandler {
	return &TriviaHandler{provider: provider, session: session, shuffle: rand.Shuffle}
}

func (h *TriviaHandler) Name() string { return "trivia" }

func (h *TriviaHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	q, err := h.provider.Question(ctx)
	if err != nil {
		return nil, err
	}
	if len(q.Incorrect) != 3 {
		return nil, fmt.Errorf("trivia provider sent %d answers, want 4", len(q.Incorrect)+1)
	}

	answers := append([]string{q.Correct}, q.Incorrect...)
	h.shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	// Only stored once the provider checks passed, so a contract
	// violation never clobbers a pending answer.
	h.session.SetAnswer(q.Correct)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", q.Category, q.Question)
	for i, a := range answers {
		fmt.Fprintf(&b, "\n%s: %s", optionLetters[i], a)
	}
	return inChannel(b.String()), nil
}

// SolveHandler reports the answer of the pending trivia question.
type SolveHandler struct {
	session *Session
}

// NewSolveHandler creates the handler.
func NewSolveHandler(session *Session) *SolveHandler {
	return &SolveHandler{session: session}
}

func (h *SolveHandler) Name() string { return "solve" }

func (h *SolveHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	answer, ok := h.session.TakeAnswer()
	if !ok {
		return ephemeral("Es gibt gerade nichts zu lösen."), nil
	}
	return inChannel(fmt.Sprintf("Die richtige Antwort war: %s", answer)), nil
}
