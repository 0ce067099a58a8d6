// Package intent classifies free-text queries into structured intents. An LLM
// does the heavy lifting when configured; a rule-based classifier covers
// everything else and every LLM failure.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
	"github.com/cinedex/cinedex/internal/logger"
	"github.com/cinedex/cinedex/internal/metrics"
)

const promptTemplate = `Classify the following movie search query into a JSON object.

Rules:
- "type" must be one of: search, recommendation, comparison, filter, chat.
- "searchStrategy" must be one of: vector, filter, hybrid.
- "confidence" is a number between 0 and 1.
- "sentiment" is one of: positive, negative, neutral.
- "entities" has "genres", "actors", "directors" (string arrays), "years" (number array), "keywords" (string array).
- Extract ONLY entities literally present in the query or the conversation context below. Never invent actors, directors, genres, or years that do not appear in the text.
- "expandedQuery" rephrases the query for semantic search without adding new facts.
- Respond with the JSON object only, no prose and no markdown fences.
%s
Query: %s`

// Service classifies queries.
type Service struct {
	completer Completer
}

// New creates an intent service. completer may be nil; classification then
// always uses the rule fallback.
func New(completer Completer) *Service {
	return &Service{completer: completer}
}

// Classify derives the intent of one query. context carries prior queries from
// the same session, oldest first. The result is computed fresh on every call.
func (s *Service) Classify(ctx context.Context, query string, history []string) (domain.QueryIntent, error) {
	if strings.TrimSpace(query) == "" {
		return domain.QueryIntent{}, fmt.Errorf("empty query: %w", domain.ErrInvalidRequest)
	}

	if s.completer == nil {
		metrics.IntentClassifyTotal.WithLabelValues("fallback").Inc()
		return classifyRules(query), nil
	}

	result, err := s.classifyLLM(ctx, query, history)
	if err != nil {
		logger.FromContext(ctx).Warn("LLM classification failed, using rules", zap.Error(err))
		metrics.IntentClassifyTotal.WithLabelValues("fallback").Inc()
		return classifyRules(query), nil
	}

	metrics.IntentClassifyTotal.WithLabelValues("llm").Inc()
	return result, nil
}

func (s *Service) classifyLLM(ctx context.Context, query string, history []string) (domain.QueryIntent, error) {
	raw, err := s.completer.Complete(ctx, buildPrompt(query, history))
	if err != nil {
		return domain.QueryIntent{}, err
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return domain.QueryIntent{}, err
	}

	var result domain.QueryIntent
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.QueryIntent{}, fmt.Errorf("parse intent JSON: %w", err)
	}
	if err := validate(result); err != nil {
		return domain.QueryIntent{}, err
	}

	sanitize(&result, query, history)
	return result, nil
}

func buildPrompt(query string, history []string) string {
	var contextBlock string
	if len(history) > 0 {
		contextBlock = "\nConversation context (earlier queries):\n- " + strings.Join(history, "\n- ") + "\n"
	}
	return fmt.Sprintf(promptTemplate, contextBlock, query)
}

// extractJSON pulls the first JSON object out of the model output, tolerating
// surrounding prose or markdown fences.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object in model output: %w", domain.ErrIntentProviderError)
	}
	return raw[start : end+1], nil
}

func validate(result domain.QueryIntent) error {
	switch result.Type {
	case domain.IntentSearch, domain.IntentRecommendation, domain.IntentComparison,
		domain.IntentFilter, domain.IntentChat:
	default:
		return fmt.Errorf("invalid intent type %q: %w", result.Type, domain.ErrIntentProviderError)
	}

	switch result.SearchStrategy {
	case domain.StrategyVector, domain.StrategyFilter, domain.StrategyHybrid:
	default:
		return fmt.Errorf("invalid search strategy %q: %w", result.SearchStrategy, domain.ErrIntentProviderError)
	}
	return nil
}

// sanitize enforces the no-hallucination rule after parsing: entities must be
// traceable to the query or the session context, confidence is clamped, and
// optional fields get safe defaults.
func sanitize(result *domain.QueryIntent, query string, history []string) {
	source := strings.ToLower(query + " " + strings.Join(history, " "))

	result.Entities.Actors = traceable(result.Entities.Actors, source)
	result.Entities.Directors = traceable(result.Entities.Directors, source)
	result.Entities.Genres = traceableGenres(result.Entities.Genres, source)
	result.Entities.Years = traceableYears(result.Entities.Years, source)

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	switch result.Sentiment {
	case domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral:
	default:
		result.Sentiment = domain.SentimentNeutral
	}

	if strings.TrimSpace(result.ExpandedQuery) == "" {
		result.ExpandedQuery = query
	}
}

// traceable keeps only entities appearing verbatim (case-insensitive) in the
// source text.
func traceable(entities []string, source string) []string {
	var kept []string
	for _, e := range entities {
		if e == "" {
			continue
		}
		if strings.Contains(source, strings.ToLower(e)) {
			kept = append(kept, e)
		}
	}
	return kept
}

// traceableGenres keeps genres present in the source either as the genre word
// itself or through a known synonym.
func traceableGenres(genres []string, source string) []string {
	var kept []string
	for _, g := range genres {
		lowered := strings.ToLower(g)
		if strings.Contains(source, lowered) {
			kept = append(kept, g)
			continue
		}
		for syn, target := range genreSynonyms {
			if target == lowered && strings.Contains(source, syn) {
				kept = append(kept, g)
				break
			}
		}
	}
	return kept
}

// traceableYears keeps years written out literally in the source.
func traceableYears(years []int, source string) []int {
	var kept []int
	for _, y := range years {
		if strings.Contains(source, strconv.Itoa(y)) {
			kept = append(kept, y)
		}
	}
	return kept
}
