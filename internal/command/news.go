package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/hausbot/internal/external"
)

// maxArticles caps how many search hits one reply lists.
const maxArticles = 5

// NewsHandler searches news articles for the remaining text.
type NewsHandler struct {
	searcher external.ArticleSearcher
}

// NewNewsHandler creates the handler.
func NewNewsHandler(searcher external.ArticleSearcher) *NewsHandler {
	return &NewsHandler{searcher: searcher}
}

func (h *NewsHandler) Name() string { return "news" }

func (h *NewsHandler) Execute(ctx context.Context, req *Request) (*Reply, error) {
	query := req.Rest()
	if query == "" {
		return ephemeral("Wonach soll ich suchen?"), nil
	}

	articles, err := h.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return ephemeral(fmt.Sprintf("Keine Artikel zu %q gefunden.", query)), nil
	}
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("%s — %s", a.Title, a.URL))
	}
	return inChannel(strings.Join(lines, "\n")), nil
}
