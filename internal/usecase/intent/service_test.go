package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cinedex/cinedex/internal/domain"
)

type mockCompleter struct {
	output string
	err    error
	prompt string
}

func (m *mockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.output, m.err
}

func TestClassify_EmptyQuery(t *testing.T) {
	svc := New(nil)

	_, err := svc.Classify(context.Background(), "   ", nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClassify_NilCompleterUsesRules(t *testing.T) {
	svc := New(nil)

	result, err := svc.Classify(context.Background(), "funny movies", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != fallbackConfidence {
		t.Fatalf("expected rule fallback, got confidence %f", result.Confidence)
	}
}

func TestClassify_LLMResult(t *testing.T) {
	completer := &mockCompleter{output: `{
		"type": "search",
		"confidence": 0.92,
		"entities": {"genres": ["sci-fi"], "actors": [], "directors": [], "years": [], "keywords": ["space"]},
		"sentiment": "neutral",
		"expandedQuery": "science fiction films set in space",
		"searchStrategy": "hybrid"
	}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "space sci-fi movies", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != domain.IntentSearch || result.Confidence != 0.92 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.SearchStrategy != domain.StrategyHybrid {
		t.Fatalf("unexpected strategy: %s", result.SearchStrategy)
	}
}

func TestClassify_JSONInsideProse(t *testing.T) {
	completer := &mockCompleter{output: "Here is the classification:\n```json\n" +
		`{"type": "filter", "confidence": 0.8, "entities": {"genres": ["comedy"], "actors": [], "directors": [], "years": [2010], "keywords": []}, "sentiment": "neutral", "expandedQuery": "comedies from 2010", "searchStrategy": "filter"}` +
		"\n```\nLet me know if you need more."}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "comedy movies 2010", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != domain.IntentFilter || len(result.Entities.Years) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClassify_LLMErrorFallsBack(t *testing.T) {
	svc := New(&mockCompleter{err: errors.New("model down")})

	result, err := svc.Classify(context.Background(), "funny movies", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != fallbackConfidence {
		t.Fatalf("expected rule fallback, got %+v", result)
	}
}

func TestClassify_MalformedJSONFallsBack(t *testing.T) {
	svc := New(&mockCompleter{output: "I cannot classify this query."})

	result, err := svc.Classify(context.Background(), "movies from 2020", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entities.Years) != 1 || result.Entities.Years[0] != 2020 {
		t.Fatalf("expected rule fallback with year, got %+v", result)
	}
}

func TestClassify_InvalidTypeFallsBack(t *testing.T) {
	completer := &mockCompleter{output: `{"type": "banter", "searchStrategy": "vector"}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "funny movies", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != fallbackConfidence {
		t.Fatalf("expected rule fallback on invalid type, got %+v", result)
	}
}

func TestClassify_HallucinatedActorsDropped(t *testing.T) {
	completer := &mockCompleter{output: `{
		"type": "search",
		"confidence": 0.9,
		"entities": {"genres": [], "actors": ["Tom Hanks", "Keanu Reeves"], "directors": ["Christopher Nolan"], "years": [], "keywords": []},
		"sentiment": "neutral",
		"expandedQuery": "movies with tom hanks",
		"searchStrategy": "vector"
	}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "movies with Tom Hanks", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entities.Actors) != 1 || result.Entities.Actors[0] != "Tom Hanks" {
		t.Fatalf("expected only traceable actor, got %v", result.Entities.Actors)
	}
	if len(result.Entities.Directors) != 0 {
		t.Fatalf("expected hallucinated director dropped, got %v", result.Entities.Directors)
	}
}

func TestClassify_HallucinatedGenresAndYearsDropped(t *testing.T) {
	completer := &mockCompleter{output: `{
		"type": "search",
		"confidence": 0.9,
		"entities": {"genres": ["comedy", "western"], "actors": [], "directors": [], "years": [1994, 2020], "keywords": []},
		"sentiment": "neutral",
		"expandedQuery": "funny movies from 1994",
		"searchStrategy": "hybrid"
	}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "funny movies from 1994", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entities.Genres) != 1 || result.Entities.Genres[0] != "comedy" {
		t.Fatalf("expected comedy kept via synonym, western dropped, got %v", result.Entities.Genres)
	}
	if len(result.Entities.Years) != 1 || result.Entities.Years[0] != 1994 {
		t.Fatalf("expected only literal year kept, got %v", result.Entities.Years)
	}
}

func TestClassify_HistoryMakesEntityTraceable(t *testing.T) {
	completer := &mockCompleter{output: `{
		"type": "recommendation",
		"confidence": 0.85,
		"entities": {"genres": [], "actors": ["Keanu Reeves"], "directors": [], "years": [], "keywords": []},
		"sentiment": "positive",
		"expandedQuery": "more films starring keanu reeves",
		"searchStrategy": "vector"
	}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "more like that", []string{"movies with Keanu Reeves"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entities.Actors) != 1 {
		t.Fatalf("expected actor traceable via history, got %v", result.Entities.Actors)
	}
}

func TestClassify_DefaultsApplied(t *testing.T) {
	completer := &mockCompleter{output: `{
		"type": "search",
		"confidence": 1.7,
		"entities": {"genres": [], "actors": [], "directors": [], "years": [], "keywords": []},
		"sentiment": "ecstatic",
		"expandedQuery": "",
		"searchStrategy": "vector"
	}`}
	svc := New(completer)

	result, err := svc.Classify(context.Background(), "dystopian futures", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %f", result.Confidence)
	}
	if result.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected sentiment defaulted to neutral, got %s", result.Sentiment)
	}
	if result.ExpandedQuery != "dystopian futures" {
		t.Fatalf("expected expandedQuery defaulted to query, got %q", result.ExpandedQuery)
	}
}

func TestClassify_PromptCarriesHistory(t *testing.T) {
	completer := &mockCompleter{err: errors.New("short-circuit")}
	svc := New(completer)

	_, _ = svc.Classify(context.Background(), "more of those", []string{"90s action movies"})

	if completer.prompt == "" {
		t.Fatal("expected a prompt")
	}
	if !strings.Contains(completer.prompt, "90s action movies") {
		t.Fatal("expected history in prompt")
	}
	if !strings.Contains(completer.prompt, "more of those") {
		t.Fatal("expected query in prompt")
	}
}
