package movie

import (
	"strconv"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/cinedex/cinedex/internal/domain"
)

// pointID extracts the string form of a point identifier. Seeded points carry
// UUID ids; numeric ids only appear in hand-built fixtures.
func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Uuid:
		return v.Uuid
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10)
	default:
		return ""
	}
}

// movieFromScored maps a similarity result to a Movie, carrying the cosine
// score.
func movieFromScored(p *qdrant.ScoredPoint) domain.Movie {
	m := movieFromPayload(pointID(p.GetId()), p.GetPayload())
	score := p.GetScore()
	m.Score = &score
	return m
}

// movieFromRetrieved maps a scroll result to a Movie. No score exists on this
// path.
func movieFromRetrieved(p *qdrant.RetrievedPoint) domain.Movie {
	return movieFromPayload(pointID(p.GetId()), p.GetPayload())
}

func movieFromPayload(id string, payload map[string]*qdrant.Value) domain.Movie {
	return domain.Movie{
		ID:            id,
		Title:         payloadString(payload, fieldTitle),
		OriginalTitle: payloadString(payload, "originalTitle"),
		Description:   payloadString(payload, fieldDescription),
		ReleaseDate:   payloadTime(payload, "releaseDate"),
		ReleaseYear:   int(payloadInt(payload, fieldReleaseYear)),
		Duration:      int(payloadInt(payload, "duration")),
		Rating:        payloadFloat(payload, fieldRating),
		ContentRating: payloadString(payload, "contentRating"),
		Language:      payloadString(payload, fieldLanguage),
		Country:       payloadString(payload, "country"),
		Budget:        payloadInt(payload, "budget"),
		GrossRevenue:  payloadInt(payload, "grossWorldwide"),
		VoteCount:     payloadInt(payload, "numVotes"),
		CriticScore:   int(payloadInt(payload, "metascore")),
		IsAdult:       payloadBool(payload, "isAdult"),
		PosterURL:     payloadString(payload, "posterUrl"),
		TrailerURL:    payloadString(payload, "trailerUrl"),
		CreatedAt:     payloadTime(payload, "createdAt"),
		Genres:        payloadStrings(payload, fieldGenres),
		Studios:       payloadStrings(payload, "studios"),
		Countries:     payloadStrings(payload, "countries"),
		Languages:     payloadStrings(payload, "languages"),
	}
}

// payloadFromMovie builds the upsert payload. Slices go through []any so the
// client's value conversion accepts them; zero-valued optional fields are
// stored as-is, matching what the seeder read from the source data.
func payloadFromMovie(m domain.Movie) map[string]any {
	payload := map[string]any{
		fieldTitle:        m.Title,
		"originalTitle":   m.OriginalTitle,
		fieldDescription:  m.Description,
		fieldReleaseYear:  int64(m.ReleaseYear),
		"duration":        int64(m.Duration),
		fieldRating:       m.Rating,
		"contentRating":   m.ContentRating,
		fieldLanguage:     m.Language,
		"country":         m.Country,
		"budget":          m.Budget,
		"grossWorldwide":  m.GrossRevenue,
		"numVotes":        m.VoteCount,
		"metascore":       int64(m.CriticScore),
		"isAdult":         m.IsAdult,
		"posterUrl":       m.PosterURL,
		"trailerUrl":      m.TrailerURL,
		fieldGenres:       toAnySlice(m.Genres),
		"studios":         toAnySlice(m.Studios),
		"countries":       toAnySlice(m.Countries),
		"languages":       toAnySlice(m.Languages),
	}
	if !m.ReleaseDate.IsZero() {
		payload["releaseDate"] = m.ReleaseDate.Format(time.RFC3339)
	}
	if !m.CreatedAt.IsZero() {
		payload["createdAt"] = m.CreatedAt.Format(time.RFC3339)
	}
	return payload
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func payloadString(p map[string]*qdrant.Value, key string) string {
	return p[key].GetStringValue()
}

// payloadInt reads an integer field, accepting double-encoded numbers from
// JSON-sourced payloads.
func payloadInt(p map[string]*qdrant.Value, key string) int64 {
	v, ok := p[key]
	if !ok {
		return 0
	}
	if _, isDouble := v.GetKind().(*qdrant.Value_DoubleValue); isDouble {
		return int64(v.GetDoubleValue())
	}
	return v.GetIntegerValue()
}

// payloadFloat reads a float field, accepting integer-encoded numbers.
func payloadFloat(p map[string]*qdrant.Value, key string) float64 {
	v, ok := p[key]
	if !ok {
		return 0
	}
	if _, isInt := v.GetKind().(*qdrant.Value_IntegerValue); isInt {
		return float64(v.GetIntegerValue())
	}
	return v.GetDoubleValue()
}

func payloadBool(p map[string]*qdrant.Value, key string) bool {
	return p[key].GetBoolValue()
}

func payloadTime(p map[string]*qdrant.Value, key string) time.Time {
	s := p[key].GetStringValue()
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func payloadStrings(p map[string]*qdrant.Value, key string) []string {
	list := p[key].GetListValue()
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if s := v.GetStringValue(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
