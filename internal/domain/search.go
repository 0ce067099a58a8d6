package domain

const (
	// DefaultLimit is the result count used when a request omits limit.
	DefaultLimit = 20
	// MaxLimit caps the result count. Enforced at the transport boundary,
	// never re-validated inside the search pipeline.
	MaxLimit = 100
)

// SearchRequest carries the free-text query plus structured filters for one
// search call. Absent optional fields mean "no constraint".
type SearchRequest struct {
	Query     string
	Genres    []string
	YearFrom  *int
	YearTo    *int
	MinRating *float64
	Language  string
	Limit     int
}

// HasFilters reports whether any structured filter field is set.
func (r SearchRequest) HasFilters() bool {
	return len(r.Genres) > 0 || r.YearFrom != nil || r.YearTo != nil ||
		r.MinRating != nil || r.Language != ""
}

// ClampLimit normalizes a boundary-parsed limit: absent (0 with no explicit
// zero) callers pass DefaultLimit themselves; values above MaxLimit are
// truncated. Negative values are a boundary error and must be rejected before
// this point.
func ClampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
