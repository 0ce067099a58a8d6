package search

import "strings"

// stopWords are filler tokens stripped before embedding. Keeping the list
// small avoids gutting short queries.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "of": {}, "for": {},
	"with": {}, "about": {}, "from": {},
	"is": {}, "are": {}, "was": {}, "were": {},
	"movie": {}, "movies": {}, "film": {}, "films": {},
	"show": {}, "me": {}, "find": {}, "some": {},
}

// Preprocess normalizes a raw query for embedding: lowercase, punctuation
// stripped, stop words and short tokens removed. When cleaning removes
// everything, the lowercased original is returned so the query is never lost.
// The returned tokens drive the text fallback.
func Preprocess(raw string) (cleaned string, tokens []string) {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		case r >= 0x80:
			// Non-ASCII letters pass through untouched.
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	for _, tok := range strings.Fields(b.String()) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		return lowered, nil
	}
	return strings.Join(tokens, " "), tokens
}
