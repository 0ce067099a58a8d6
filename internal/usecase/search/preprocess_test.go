package search

import (
	"reflect"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantClean  string
		wantTokens []string
	}{
		{
			name:       "stop words and short tokens removed",
			raw:        "Show me some movies about space exploration",
			wantClean:  "space exploration",
			wantTokens: []string{"space", "exploration"},
		},
		{
			name:       "punctuation stripped",
			raw:        "sci-fi, thrillers!",
			wantClean:  "sci thrillers",
			wantTokens: []string{"sci", "thrillers"},
		},
		{
			name:       "lowercased",
			raw:        "BATMAN Begins",
			wantClean:  "batman begins",
			wantTokens: []string{"batman", "begins"},
		},
		{
			name:       "all stop words returns lowered original",
			raw:        "The Movie",
			wantClean:  "the movie",
			wantTokens: nil,
		},
		{
			name:       "empty input",
			raw:        "   ",
			wantClean:  "",
			wantTokens: nil,
		},
		{
			name:       "numbers survive",
			raw:        "best of 2019",
			wantClean:  "best 2019",
			wantTokens: []string{"best", "2019"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, tokens := Preprocess(tt.raw)
			if clean != tt.wantClean {
				t.Fatalf("cleaned: expected %q, got %q", tt.wantClean, clean)
			}
			if !reflect.DeepEqual(tokens, tt.wantTokens) {
				t.Fatalf("tokens: expected %v, got %v", tt.wantTokens, tokens)
			}
		})
	}
}

func TestPreprocess_Deterministic(t *testing.T) {
	a, _ := Preprocess("Dark   Knight  Returns")
	b, _ := Preprocess("Dark   Knight  Returns")
	if a != b {
		t.Fatalf("expected deterministic output, got %q vs %q", a, b)
	}
}
