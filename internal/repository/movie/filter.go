package movie

import (
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/cinedex/cinedex/internal/domain"
)

// Payload field keys in the movies collection.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldGenres      = "genres"
	fieldReleaseYear = "releaseYear"
	fieldRating      = "imdbRating"
	fieldLanguage    = "language"
)

// buildFilter translates structured search filters into a Qdrant filter. All
// conditions are combined as a must-conjunction: genres match any of the
// requested tags, year bounds are independent range conditions, minimum rating
// is a lower bound, language is an exact match. Returns nil when no filter
// field is set so unfiltered searches skip filter evaluation entirely.
func buildFilter(req domain.SearchRequest) *qdrant.Filter {
	var must []*qdrant.Condition

	if len(req.Genres) > 0 {
		must = append(must, qdrant.NewMatchKeywords(fieldGenres, req.Genres...))
	}
	if req.YearFrom != nil {
		gte := float64(*req.YearFrom)
		must = append(must, qdrant.NewRange(fieldReleaseYear, &qdrant.Range{Gte: &gte}))
	}
	if req.YearTo != nil {
		lte := float64(*req.YearTo)
		must = append(must, qdrant.NewRange(fieldReleaseYear, &qdrant.Range{Lte: &lte}))
	}
	if req.MinRating != nil {
		gte := *req.MinRating
		must = append(must, qdrant.NewRange(fieldRating, &qdrant.Range{Gte: &gte}))
	}
	if req.Language != "" {
		must = append(must, qdrant.NewMatch(fieldLanguage, req.Language))
	}

	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

// buildTextFilter builds the text-fallback filter: full-text should-conditions
// on title and description for each query token, layered on top of the
// structured must-conditions. A point matches when it satisfies all structured
// filters and at least one token condition.
func buildTextFilter(req domain.SearchRequest, tokens []string) *qdrant.Filter {
	var should []*qdrant.Condition
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		should = append(should,
			qdrant.NewMatchText(fieldTitle, tok),
			qdrant.NewMatchText(fieldDescription, tok),
		)
	}

	filter := buildFilter(req)
	if len(should) == 0 {
		return filter
	}
	if filter == nil {
		filter = &qdrant.Filter{}
	}
	filter.Should = should
	return filter
}
