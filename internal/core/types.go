package core

// Sentinel values substituted when a field cannot be extracted from the
// source markup. Partial data is preferable to losing the article.
const (
	UnknownTitle    = "Unknown Title"
	UnknownDate     = "Unknown Date"
	UnknownReporter = "Unknown Reporter"
	NoContent       = "No Content"
)

// Count is an engagement counter. CountUnavailable marks a counter the
// auxiliary endpoint could not provide; any other value is non-negative.
type Count int64

// CountUnavailable is the explicit "unavailable" marker for a counter.
const CountUnavailable Count = -1

// Known reports whether the counter was actually fetched.
func (c Count) Known() bool {
	return c >= 0
}

// Article is the structured record produced by fetching and enriching one
// source document. Fields that could not be extracted hold their sentinel.
type Article struct {
	Title         string `json:"title"`
	PublishedAt   string `json:"published_at"`
	Author        string `json:"author"`
	Body          string `json:"body"`
	SourceURL     string `json:"source_url"`
	ReactionCount Count  `json:"reaction_count"`
	CommentCount  Count  `json:"comment_count"`
}

// StoredArticle is the composite document persisted in the vector store.
// Both vectors must come from the same embedding model; EmbeddingModel
// records which one so mixed-model indexes can be detected.
type StoredArticle struct {
	Key string `json:"key"`
	Article
	TitleVector    []float32 `json:"title_vector"`
	BodyVector     []float32 `json:"body_vector"`
	EmbeddingModel string    `json:"embedding_model"`
}

// VectorHit is one result of a pure vector nearest-neighbor search.
type VectorHit struct {
	Key   string  `json:"key"`
	Score float32 `json:"score"`
}

// HybridHit is one result of the combined filter + lexical + KNN query.
type HybridHit struct {
	Key           string  `json:"key"`
	Title         string  `json:"title"`
	PublishedAt   string  `json:"published_at"`
	Author        string  `json:"author"`
	SourceURL     string  `json:"source_url"`
	ReactionCount Count   `json:"reaction_count"`
	Score         float32 `json:"score"`
}
