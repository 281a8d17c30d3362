package core

import "context"

// EmbedService turns text into a fixed-dimension embedding vector.
type EmbedService interface {
	// EmbedQuery generates an embedding for the given text. A provider
	// error must surface to the caller; an unembedded record is
	// incomplete and must not be stored silently.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// ModelID identifies the embedding model producing the vectors.
	ModelID() string
}

// ArticleFetcher resolves a numeric sequence position to one structured
// article record, or reports that no article exists at that position.
type ArticleFetcher interface {
	Fetch(ctx context.Context, seq int64) (*Article, error)
}

// ArticleStore is the document store with a vector index.
type ArticleStore interface {
	// Upsert inserts or overwrites the document under its key.
	Upsert(ctx context.Context, doc *StoredArticle) error

	// Get resolves a stored document by key.
	Get(ctx context.Context, key string) (*StoredArticle, error)

	// SearchByBody runs a pure vector nearest-neighbor search against the
	// body vector index, returning up to k hits by similarity.
	SearchByBody(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// HybridSearch combines a structured filter (author suffix, minimum
	// reaction count), a lexical match of titleText against the title
	// field, and a KNN clause against the body vector.
	HybridSearch(ctx context.Context, vector []float32, titleText, authorSuffix string, minReactions int64, k int) ([]HybridHit, error)
}
