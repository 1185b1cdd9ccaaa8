package textutil

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips accents and lowercases",
			input: "Calças",
			want:  "calcas",
		},
		{
			name:  "removes punctuation and collapses whitespace",
			input: "Quero ver calças, por favor!",
			want:  "quero ver calcas por favor",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  oi   tudo bem  ",
			want:  "oi tudo bem",
		},
		{
			name:  "keeps digits",
			input: "Camiseta 2",
			want:  "camiseta 2",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			input: "?!...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Calças",
		"Quero ver calças, por favor!",
		"OLÁ!!! Bom   dia",
		"jeans",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestFindNormalizedMatch(t *testing.T) {
	items := []string{"Calças", "Camisas", "Vestidos"}

	if got := FindNormalizedMatch("calcas", items); got != "Calças" {
		t.Errorf("FindNormalizedMatch = %q, want %q", got, "Calças")
	}

	if got := FindNormalizedMatch("sapatos", items); got != "" {
		t.Errorf("FindNormalizedMatch = %q, want empty", got)
	}
}
