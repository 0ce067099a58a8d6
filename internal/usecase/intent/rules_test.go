package intent

import (
	"reflect"
	"testing"

	"github.com/cinedex/cinedex/internal/domain"
)

func TestClassifyRules_GenreSynonym(t *testing.T) {
	result := classifyRules("funny movies")

	if !reflect.DeepEqual(result.Entities.Genres, []string{"comedy"}) {
		t.Fatalf("expected [comedy], got %v", result.Entities.Genres)
	}
	if result.Type != domain.IntentFilter {
		t.Fatalf("expected filter intent, got %s", result.Type)
	}
	if result.SearchStrategy != domain.StrategyFilter {
		t.Fatalf("expected filter strategy, got %s", result.SearchStrategy)
	}
}

func TestClassifyRules_YearExtraction(t *testing.T) {
	result := classifyRules("movies from 2020")

	if !reflect.DeepEqual(result.Entities.Years, []int{2020}) {
		t.Fatalf("expected [2020], got %v", result.Entities.Years)
	}
	if result.SearchStrategy != domain.StrategyFilter {
		t.Fatalf("expected filter strategy, got %s", result.SearchStrategy)
	}
}

func TestClassifyRules_FilterWhenGenreWithKeywords(t *testing.T) {
	result := classifyRules("scary movies about haunted houses")

	if !reflect.DeepEqual(result.Entities.Genres, []string{"horror"}) {
		t.Fatalf("expected [horror], got %v", result.Entities.Genres)
	}
	if len(result.Entities.Keywords) == 0 {
		t.Fatal("expected content keywords")
	}
	if result.Type != domain.IntentFilter {
		t.Fatalf("expected filter intent, got %s", result.Type)
	}
	if result.SearchStrategy != domain.StrategyFilter {
		t.Fatalf("expected filter strategy, got %s", result.SearchStrategy)
	}
}

func TestClassifyRules_HybridWhenLongFreeText(t *testing.T) {
	result := classifyRules("a wonderful story about friendship betrayal and redemption during wartime")

	if len(result.Entities.Genres) != 0 || len(result.Entities.Years) != 0 {
		t.Fatalf("expected no structured entities, got %+v", result.Entities)
	}
	if result.SearchStrategy != domain.StrategyHybrid {
		t.Fatalf("expected hybrid strategy, got %s", result.SearchStrategy)
	}
}

func TestClassifyRules_Recommendation(t *testing.T) {
	for _, query := range []string{
		"recommend something like Inception",
		"what should I watch tonight",
	} {
		if result := classifyRules(query); result.Type != domain.IntentRecommendation {
			t.Errorf("%q: expected recommendation, got %s", query, result.Type)
		}
	}
}

func TestClassifyRules_Comparison(t *testing.T) {
	result := classifyRules("Alien vs Predator which is better")

	if result.Type != domain.IntentComparison {
		t.Fatalf("expected comparison, got %s", result.Type)
	}
}

func TestClassifyRules_Chat(t *testing.T) {
	result := classifyRules("hello how are you")

	if result.Type != domain.IntentChat {
		t.Fatalf("expected chat, got %s", result.Type)
	}
}

func TestClassifyRules_SentimentAlwaysNeutral(t *testing.T) {
	for _, query := range []string{
		"the greatest war movies ever",
		"boring movies to avoid",
		"movies set in tokyo",
	} {
		if got := classifyRules(query).Sentiment; got != domain.SentimentNeutral {
			t.Errorf("%q: expected neutral, got %s", query, got)
		}
	}
}

func TestClassifyRules_VectorWhenFreeTextOnly(t *testing.T) {
	result := classifyRules("lonely astronaut stranded far away")

	if result.SearchStrategy != domain.StrategyVector {
		t.Fatalf("expected vector strategy, got %s", result.SearchStrategy)
	}
	if result.Type != domain.IntentSearch {
		t.Fatalf("expected search intent, got %s", result.Type)
	}
}

func TestClassifyRules_ExpandedQueryEchoesInput(t *testing.T) {
	result := classifyRules("Funny Movies")
	if result.ExpandedQuery != "Funny Movies" {
		t.Fatalf("expected original query, got %q", result.ExpandedQuery)
	}
	if result.Confidence != fallbackConfidence {
		t.Fatalf("expected fallback confidence, got %f", result.Confidence)
	}
}

func TestMatchGenres_Deduplicates(t *testing.T) {
	genres := matchGenres("funny hilarious comedy films")
	if !reflect.DeepEqual(genres, []string{"comedy"}) {
		t.Fatalf("expected deduplicated [comedy], got %v", genres)
	}
}
