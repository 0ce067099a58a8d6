package domain

// IntentType classifies what a free-text query is asking for.
type IntentType string

const (
	IntentSearch         IntentType = "search"
	IntentRecommendation IntentType = "recommendation"
	IntentComparison     IntentType = "comparison"
	IntentFilter         IntentType = "filter"
	IntentChat           IntentType = "chat"
)

// SearchStrategy selects how the orchestrator should resolve a query.
type SearchStrategy string

const (
	StrategyVector SearchStrategy = "vector"
	StrategyFilter SearchStrategy = "filter"
	StrategyHybrid SearchStrategy = "hybrid"
)

// Sentiment is the expressed polarity of a query.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IntentEntities holds entities extracted from a query. Each slice is
// populated only when the entity is explicitly present in the input text;
// classifiers must never infer entities that are not literally there.
type IntentEntities struct {
	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Directors []string `json:"directors"`
	Years     []int    `json:"years"`
	Keywords  []string `json:"keywords"`
}

// QueryIntent is the derived classification of one query. Ephemeral: computed
// per call and never cached across calls.
type QueryIntent struct {
	Type           IntentType     `json:"type"`
	Confidence     float64        `json:"confidence"`
	Entities       IntentEntities `json:"entities"`
	Sentiment      Sentiment      `json:"sentiment"`
	ExpandedQuery  string         `json:"expandedQuery"`
	SearchStrategy SearchStrategy `json:"searchStrategy"`
}
