package domain

// CatalogStatistics summarizes the stored catalog. Aggregates other than
// TotalMovies are computed over a bounded sample of the collection.
type CatalogStatistics struct {
	TotalMovies    uint64  `json:"totalMovies"`
	DistinctGenres int     `json:"distinctGenres"`
	AverageRating  float64 `json:"averageRating"`
	EarliestYear   int     `json:"earliestYear,omitempty"`
	LatestYear     int     `json:"latestYear,omitempty"`
}
