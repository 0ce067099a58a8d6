package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cinedex/cinedex/internal/domain"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// fallbackConfidence marks rule-based results as weaker than LLM ones.
const fallbackConfidence = 0.6

// hybridTokenThreshold is the query length above which an unstructured query
// is resolved with the hybrid strategy.
const hybridTokenThreshold = 6

var recommendationCues = []string{"recommend", "suggest", "what should", "similar to", "like ", "something to watch"}
var comparisonCues = []string{" vs ", " versus ", "compare", "better than", "difference between"}
var chatCues = []string{"hello", "hi there", "how are you", "thanks", "thank you", "who are you"}

// classifyRules derives an intent from the query text alone. Entities come
// only from literal matches; nothing is invented, and sentiment is not
// analyzed locally.
func classifyRules(query string) domain.QueryIntent {
	lowered := strings.ToLower(query)

	entities := domain.IntentEntities{
		Genres:   matchGenres(query),
		Years:    matchYears(query),
		Keywords: contentKeywords(lowered),
	}

	return domain.QueryIntent{
		Type:           detectType(lowered, entities),
		Confidence:     fallbackConfidence,
		Entities:       entities,
		Sentiment:      domain.SentimentNeutral,
		ExpandedQuery:  query,
		SearchStrategy: selectStrategy(lowered, entities),
	}
}

func detectType(lowered string, entities domain.IntentEntities) domain.IntentType {
	for _, cue := range comparisonCues {
		if strings.Contains(lowered, cue) {
			return domain.IntentComparison
		}
	}
	for _, cue := range recommendationCues {
		if strings.Contains(lowered, cue) {
			return domain.IntentRecommendation
		}
	}

	if len(entities.Genres) > 0 || len(entities.Years) > 0 {
		return domain.IntentFilter
	}

	for _, cue := range chatCues {
		if strings.Contains(lowered, cue) {
			return domain.IntentChat
		}
	}
	return domain.IntentSearch
}

// selectStrategy picks filter when structured entities exist, hybrid for long
// unstructured queries, vector otherwise.
func selectStrategy(lowered string, entities domain.IntentEntities) domain.SearchStrategy {
	if len(entities.Genres) > 0 || len(entities.Years) > 0 {
		return domain.StrategyFilter
	}
	if len(strings.Fields(lowered)) > hybridTokenThreshold {
		return domain.StrategyHybrid
	}
	return domain.StrategyVector
}

func matchYears(query string) []int {
	var years []int
	for _, m := range yearPattern.FindAllString(query, -1) {
		if y, err := strconv.Atoi(m); err == nil {
			years = append(years, y)
		}
	}
	return years
}

// keywordStopWords are tokens carrying no search content on their own.
var keywordStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "of": {}, "for": {},
	"with": {}, "about": {}, "from": {}, "me": {}, "some": {}, "any": {},
	"is": {}, "are": {}, "was": {}, "were": {},
	"movie": {}, "movies": {}, "film": {}, "films": {},
	"show": {}, "find": {}, "want": {}, "watch": {},
	"recommend": {}, "suggest": {}, "best": {}, "good": {},
}

// contentKeywords extracts free-text tokens that are neither stop words,
// genre terms, nor years.
func contentKeywords(lowered string) []string {
	genreTerms := map[string]struct{}{}
	for _, g := range genreVocabulary {
		genreTerms[g] = struct{}{}
	}
	for syn := range genreSynonyms {
		genreTerms[syn] = struct{}{}
	}

	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-')
	})

	var keywords []string
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, ok := keywordStopWords[tok]; ok {
			continue
		}
		if _, ok := genreTerms[tok]; ok {
			continue
		}
		if yearPattern.MatchString(tok) {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}
