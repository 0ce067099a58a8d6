package domain

import "time"

// Movie is the read entity served by the catalog. Records are written once by
// the seeder and immutable afterward.
//
// Score is populated only when the record was produced by a vector similarity
// search; filter-only browses and text fallbacks leave it nil. Embedding is
// the write path only and is never serialized back to callers.
type Movie struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"originalTitle,omitempty"`
	Description   string    `json:"description,omitempty"`
	ReleaseDate   time.Time `json:"releaseDate,omitempty"`
	ReleaseYear   int       `json:"releaseYear,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	Rating        float64   `json:"imdbRating,omitempty"`
	ContentRating string    `json:"contentRating,omitempty"`
	Language      string    `json:"language,omitempty"`
	Country       string    `json:"country,omitempty"`
	Budget        int64     `json:"budget,omitempty"`
	GrossRevenue  int64     `json:"grossWorldwide,omitempty"`
	VoteCount     int64     `json:"numVotes,omitempty"`
	CriticScore   int       `json:"metascore,omitempty"`
	IsAdult       bool      `json:"isAdult,omitempty"`
	PosterURL     string    `json:"posterUrl,omitempty"`
	TrailerURL    string    `json:"trailerUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`

	Genres    []string `json:"genres,omitempty"`
	Studios   []string `json:"studios,omitempty"`
	Countries []string `json:"countries,omitempty"`
	Languages []string `json:"languages,omitempty"`

	Score *float32 `json:"score,omitempty"`

	Embedding []float32 `json:"-"`
}
