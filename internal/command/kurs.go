package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/hausbot/internal/external"
)

// KursHandler converts an amount between two currencies.
type KursHandler struct {
	converter external.CurrencyConverter
}

// NewKursHandler creates the handler.
func NewKursHandler(converter external.CurrencyConverter) *KursHandler {
	return &KursHandler{converter: converter}
}

func (h *KursHandler) Name() string { return "kurs" }

func (h *KursHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	if len(req.Tokens) != 4 {
		return ephemeral("So geht das nicht: kurs <betrag> <von> <nach>"), nil
	}
	amount, err := strconv.ParseFloat(req.Tokens[1], 64)
	if err != nil {
		return ephemeral(fmt.Sprintf("%q ist keine Zahl.", req.Tokens[1])), nil
	}
	from, to := req.Tokens[2], req.Tokens[3]

	result, err := h.converter.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}
	return ephemeral(fmt.Sprintf("%.2f %s = %.2f %s",
		amount, strings.ToUpper(from), result, strings.ToUpper(to))), nil
}
