package store

import "time"

// WordVector is one stored token annotation.
type WordVector struct {
	ID        int64     `db:"id" json:"id"`
	Language  string    `db:"language" json:"language"`
	Variant   string    `db:"variant" json:"variant"`
	Token     string    `db:"token" json:"token"`
	Embedding []float32 `db:"-" json:"embedding"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SimilarWord is a similarity-search hit.
type SimilarWord struct {
	Word       *WordVector `json:"word"`
	Similarity float32     `json:"similarity"`
	Distance   float32     `json:"distance"`
}

// SearchOptions filters a similarity search.
type SearchOptions struct {
	Language      string
	Limit         int
	MinSimilarity float32
}

// Stats summarizes the store's contents.
type Stats struct {
	TotalVectors int64 `json:"total_vectors"`
	Languages    int64 `json:"languages"`
}

// BatchResult reports the outcome of a batch insert.
type BatchResult struct {
	Inserted int64         `json:"inserted"`
	Skipped  int64         `json:"skipped"`
	Duration time.Duration `json:"duration"`
}
