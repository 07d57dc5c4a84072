package ranking

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one row of the rendered table.
type Entry struct {
	Name  string
	Score int
}

// Sorted returns the active players ordered by descending score. Ties
// keep a stable order by name so repeated renders are identical.
func Sorted(t Table) []Entry {
	entries := make([]Entry, 0, len(t))
	for name, rec := range t {
		if !rec.Active {
			continue
		}
		entries = append(entries, Entry{Name: name, Score: rec.Score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Render formats the table for the chat channel, one "name: score" line
// per active player, highest score first.
func Render(t Table) string {
	var b strings.Builder
	for i, e := range Sorted(t) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %d", mentionBreak(e.Name), e.Score)
	}
	return b.String()
}

// mentionBreak inserts a zero-width non-joiner after the second rune so
// the chat platform does not expand the name into an @-mention.
func mentionBreak(name string) string {
	const zwnj = "\u200c"
	r := []rune(name)
	if len(r) <= 2 {
		return name + zwnj
	}
	return string(r[:2]) + zwnj + string(r[2:])
}
