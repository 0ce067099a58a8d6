package intent

import "strings"

// genreVocabulary are the catalog genre tags the classifier may emit,
// lowercased for matching.
var genreVocabulary = []string{
	"action", "adventure", "animation", "biography", "comedy", "crime",
	"documentary", "drama", "family", "fantasy", "history", "horror",
	"music", "musical", "mystery", "romance", "sci-fi", "sport",
	"thriller", "war", "western",
}

// genreSynonyms map colloquial phrasings onto catalog genres.
var genreSynonyms = map[string]string{
	"funny":         "comedy",
	"hilarious":     "comedy",
	"scary":         "horror",
	"terrifying":    "horror",
	"spooky":        "horror",
	"romantic":      "romance",
	"love":          "romance",
	"animated":      "animation",
	"cartoon":       "animation",
	"cartoons":      "animation",
	"science":       "sci-fi",
	"scifi":         "sci-fi",
	"space":         "sci-fi",
	"futuristic":    "sci-fi",
	"suspense":      "thriller",
	"suspenseful":   "thriller",
	"detective":     "mystery",
	"whodunit":      "mystery",
	"historical":    "history",
	"documentaries": "documentary",
	"kids":          "family",
	"children":      "family",
	"musicals":      "musical",
}

// matchGenres returns catalog genres literally present in the query, either as
// the genre word itself or via a known synonym. Order follows first
// appearance; duplicates collapse.
func matchGenres(query string) []string {
	lowered := strings.ToLower(query)
	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-')
	})

	seen := map[string]struct{}{}
	var genres []string
	add := func(g string) {
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}

	direct := map[string]struct{}{}
	for _, g := range genreVocabulary {
		direct[g] = struct{}{}
	}

	for _, tok := range tokens {
		if _, ok := direct[tok]; ok {
			add(tok)
			continue
		}
		if g, ok := genreSynonyms[tok]; ok {
			add(g)
		}
	}
	return genres
}
