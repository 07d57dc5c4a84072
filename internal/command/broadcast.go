package command

import "context"

// SayHandler relays the remaining text to the channel without
// attribution to the sender. Registered under "say" and, via aliases,
// "alle" and "ruf".
type SayHandler struct{}

// NewSayHandler creates the handler.
func NewSayHandler() *SayHandler { return &SayHandler{} }

func (h *SayHandler) Name() string { return "say" }

func (h *SayHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	text := req.Rest()
	if text == "" {
		return ephemeral("Was soll ich denn sagen?"), nil
	}
	return deferred(text), nil
}

// BellHandler rings the channel: a fixed attention ping, delivered
// without attribution.
type BellHandler struct{}

// NewBellHandler creates the handler.
func NewBellHandler() *BellHandler { return &BellHandler{} }

func (h *BellHandler) Name() string { return "bell" }

func (h *BellHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	return deferred("🔔 Es klingelt!"), nil
}

// HelpHandler prints the command overview.
type HelpHandler struct{}

// NewHelpHandler creates the handler.
func NewHelpHandler() *HelpHandler { return &HelpHandler{} }

func (h *HelpHandler) Name() string { return "help" }

const helpText = `schika ... — Schika-Tabelle (siehe "schika help")
trivia / solve — Quizfrage stellen und auflösen
zuhause [ort ...] — wer ist zuhause / sich anmelden ("zuhause weg" zum Abmelden)
say / alle / ruf <text> — Nachricht ohne Absender in den Kanal
bell — klingeln
kurs <betrag> <von> <nach> — Währung umrechnen
news <suche> — Artikel suchen`

func (h *HelpHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	return ephemeral(helpText), nil
}
