package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ZuhauseHandler reports and maintains the who-is-home map. Without
// arguments it renders the map; with arguments it declares the caller
// present at those locations; "zuhause weg" clears the caller.
type ZuhauseHandler struct {
	session *Session
}

// NewZuhauseHandler creates the handler.
func NewZuhauseHandler(session *Session) *ZuhauseHandler {
	return &ZuhauseHandler{session: session}
}

func (h *ZuhauseHandler) Name() string { return "zuhause" }

func (h *ZuhauseHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	args := req.Tokens[1:]

	if len(args) == 0 {
		presence := h.session.Presence()
		if len(presence) == 0 {
			return inChannel("Niemand ist zuhause."), nil
		}

		names := make([]string, 0, len(presence))
		for name := range presence {
			names = append(names, name)
		}
		sort.Strings(names)

		lines := make([]string, 0, len(names))
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("%s (%s)", name, strings.Join(presence[name], ", ")))
		}
		return inChannel(strings.Join(lines, "\n")), nil
	}

	if len(args) == 1 && args[0] == "weg" {
		h.session.ClearPresence(req.User)
		return ephemeral("Bis bald!"), nil
	}

	h.session.SetPresence(req.User, args)
	return ephemeral(fmt.Sprintf("Alles klar, du bist zuhause: %s", strings.Join(args, ", "))), nil
}
