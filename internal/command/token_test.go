package command

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		user string
		want []string
	}{
		{
			name: "pronoun substitution",
			text: "ich gewinne",
			user: "alice",
			want: []string{"@alice", "gewinne"},
		},
		{
			name: "pronoun only as standalone word",
			text: "sportlich gewinne",
			user: "alice",
			want: []string{"sportlich", "gewinne"},
		},
		{
			name: "plain command",
			text: "schika set anton 1000",
			user: "alice",
			want: []string{"schika", "set", "anton", "1000"},
		},
		{
			name: "punctuation groups contiguously",
			text: "was?! echt...",
			user: "alice",
			want: []string{"was", "?!", "echt", "..."},
		},
		{
			name: "mixed classes inside one chunk",
			text: "anton:1000",
			user: "alice",
			want: []string{"anton", ":1000"},
		},
		{
			name: "handle stays one token",
			text: "@anton-b gewinnt",
			user: "alice",
			want: []string{"@anton-b", "gewinnt"},
		},
		{
			name: "umlauts are word runes",
			text: "wenn ich gewönne",
			user: "bob",
			want: []string{"wenn", "@bob", "gewönne"},
		},
		{
			name: "whitespace runs collapse",
			text: "  schika   list  ",
			user: "alice",
			want: []string{"schika", "list"},
		},
		{
			name: "empty input",
			text: "",
			user: "alice",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.user)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q, %q) = %v, want %v", tt.text, tt.user, got, tt.want)
			}
		})
	}
}
