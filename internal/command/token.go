// Package command tokenizes slash-command text and dispatches it to the
// registered handlers.
package command

import (
	"strings"
	"unicode"
)

// isWordRune reports whether r belongs to the word token class:
// lowercase letters plus the handful of symbols that appear inside
// chat handles and slash commands.
func isWordRune(r rune) bool {
	return unicode.IsLower(r) || r == '@' || r == '/' || r == '_' || r == '-'
}

// Tokenize splits raw command text into tokens. Whitespace runs
// separate tokens and are never emitted. Two classes are recognized by
// longest match: runs of word runes, and runs of any other non-space
// runes (punctuation and digits group contiguously). Before splitting,
// every standalone "ich" is replaced by the invoking user's handle
// prefixed with @, so self-reference resolves to the caller.
func Tokenize(text, user string) []string {
	fields := strings.Fields(text)
	for i, f := range fields {
		if f == "ich" {
			fields[i] = "@" + user
		}
	}

	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, lex(f)...)
	}
	return tokens
}

// lex splits one whitespace-free chunk at word/symbol class boundaries.
func lex(chunk string) []string {
	var tokens []string
	runes := []rune(chunk)
	for i := 0; i < len(runes); {
		word := isWordRune(runes[i])
		j := i + 1
		for j < len(runes) && isWordRune(runes[j]) == word {
			j++
		}
		tokens = append(tokens, string(runes[i:j]))
		i = j
	}
	return tokens
}
