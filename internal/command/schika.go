package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/hausbot/internal/elo"
	"github.com/example/hausbot/internal/ranking"
)

// Outcome synonym lists, checked in this priority order. A match report
// names exactly two known players plus one word from one of these.
var (
	winsFirst  = []string{"gewinnt", "besiegt", "wins", "defeats", "gewonnen", "gewinne", "gewinnen"}
	winsSecond = []string{"verliert", "unterliegt", "loses", "lost", "verloren", "verliere"}
	drawWords  = []string{"remis", "unentschieden", "ties", "tie"}

	// Any of these anywhere in the command makes it a simulation: the
	// update is computed and shown but never persisted.
	simulationWords = []string{"test", "wenn", "hätte", "gewönne", "verlöre"}
)

const schikaUsage = `schika <spieler> <ergebnis> <spieler> — Ergebnis melden (z.B. "schika ich gewinne gegen anton")
schika list — Tabelle zeigen
schika set <spieler> <punkte> — Punkte direkt setzen
schika hide <spieler> / unhide <spieler> — Spieler verstecken / zurückholen
schika help — diese Hilfe
Mit "test" oder "wenn" im Satz wird nur simuliert.`

// SchikaHandler maintains the card-game ranking table.
type SchikaHandler struct {
	store *ranking.Store
}

// NewSchikaHandler creates the handler on top of the given store.
func NewSchikaHandler(store *ranking.Store) *SchikaHandler {
	return &SchikaHandler{store: store}
}

func (h *SchikaHandler) Name() string { return "schika" }

// Execute runs the whole load-classify-mutate-save cycle inside one
// store update, so no other invocation can interleave with it.
func (h *SchikaHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	var reply *Reply
	err := h.store.Update(func(t ranking.Table) (ranking.Table, bool, error) {
		var save bool
		var err error
		reply, t, save, err = h.dispatch(req, t)
		return t, save, err
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// dispatch classifies the token sequence in two stages: a command with
// exactly two known players is a match report; everything else falls
// through to the second-token subcommand switch.
func (h *SchikaHandler) dispatch(req *Request, t ranking.Table) (*Reply, ranking.Table, bool, error) {
	if players := knownPlayers(req.Tokens, t); len(players) == 2 {
		reply, save, err := h.matchReport(req, t, players)
		return reply, t, save, err
	}

	if len(req.Tokens) < 2 {
		return ephemeral("Ich habe dich nicht verstanden. Drücke dich klarer aus."), t, false, nil
	}

	switch req.Tokens[1] {
	case "list":
		if t == nil {
			return ephemeral("Es gibt noch keine Tabelle."), t, false, nil
		}
		reply := inChannel("Tabelle:")
		reply.Message.WithAttachment(ranking.Render(t))
		return reply, t, false, nil

	case "hide", "unhide":
		if len(req.Tokens) < 3 {
			return ephemeral(fmt.Sprintf("So geht das nicht: schika %s <spieler>", req.Tokens[1])), t, false, nil
		}
		if t == nil {
			return ephemeral("Es gibt noch keine Tabelle."), t, false, nil
		}
		id := req.Tokens[2]
		active := req.Tokens[1] == "unhide"
		if err := t.SetActive(id, active); err != nil {
			if errors.Is(err, ranking.ErrUnknownPlayer) {
				return ephemeral(fmt.Sprintf("Ich kenne keinen Spieler %q.", id)), t, false, nil
			}
			return nil, t, false, err
		}
		text := fmt.Sprintf("%s ist jetzt versteckt.", id)
		if active {
			text = fmt.Sprintf("%s ist wieder in der Tabelle.", id)
		}
		return ephemeral(text), t, true, nil

	case "set":
		if len(req.Tokens) < 4 {
			return ephemeral("So geht das nicht: schika set <spieler> <punkte>"), t, false, nil
		}
		id := req.Tokens[2]
		score, err := strconv.Atoi(req.Tokens[3])
		if err != nil {
			return ephemeral(fmt.Sprintf("%q ist keine Zahl.", req.Tokens[3])), t, false, nil
		}
		if t == nil {
			t = ranking.Table{}
		}
		t.SetScore(id, score)
		return ephemeral(fmt.Sprintf("Punkte von %s auf %d gesetzt.", id, score)), t, true, nil

	case "help":
		return ephemeral(schikaUsage), t, false, nil

	default:
		return ephemeral("Ich habe dich nicht verstanden. Drücke dich klarer aus."), t, false, nil
	}
}

// matchReport applies one match result to the two named players. The
// remaining tokens are scanned against the outcome lists in priority
// order; membership decides, position does not.
func (h *SchikaHandler) matchReport(req *Request, t ranking.Table, players []string) (*Reply, bool, error) {
	outcome, ok := classifyOutcome(req.Tokens)
	if !ok {
		return ephemeral("Ich habe dich nicht verstanden. Drücke dich klarer aus."), false, nil
	}

	x := t[players[0]].Score
	y := t[players[1]].Score
	nx, ny, err := elo.Update(x, y, outcome, elo.DefaultK)
	if err != nil {
		return nil, false, fmt.Errorf("updating ratings: %w", err)
	}
	if err := t.AddResult(players[0], nx); err != nil {
		return nil, false, err
	}
	if err := t.AddResult(players[1], ny); err != nil {
		return nil, false, err
	}

	if containsAny(req.Tokens, simulationWords) {
		reply := deferred("Neue Tabelle (nur simuliert, nichts gespeichert):")
		reply.Message.WithAttachment(ranking.Render(t))
		return reply, false, nil
	}

	reply := inChannel("Neue Tabelle:")
	reply.Message.WithAttachment(ranking.Render(t))
	return reply, true, nil
}

// knownPlayers returns the tokens that exactly match a key in the
// table, in order of appearance.
func knownPlayers(tokens []string, t ranking.Table) []string {
	var players []string
	for _, tok := range tokens {
		if t.Has(tok) {
			players = append(players, tok)
		}
	}
	return players
}

// classifyOutcome picks the first synonym list with a hit.
func classifyOutcome(tokens []string) (int, bool) {
	switch {
	case containsAny(tokens, winsFirst):
		return elo.FirstWins, true
	case containsAny(tokens, winsSecond):
		return elo.SecondWins, true
	case containsAny(tokens, drawWords):
		return elo.Draw, true
	}
	return 0, false
}

func containsAny(tokens, words []string) bool {
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}
