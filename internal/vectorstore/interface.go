package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks lawadvisor-ai/internal/vectorstore VectorStore

import "context"

// SearchResult represents one ranked candidate from a similarity search.
// Meta carries the point payload; the field names inside are an index-schema
// contract with the offline import job.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the similarity-search interface the reasoning pipeline
// consumes. filters holds optional exact-match payload predicates.
type VectorStore interface {
	// Search returns the top k candidates for the query vector, ranked by
	// similarity, with payloads attached.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]string) ([]SearchResult, error)

	// CollectionExists reports whether a collection exists. Used by health
	// checks and boot-time validation.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
