package query

import (
	"context"
	"fmt"
	"sort"

	"newsvector/internal/core"
	"newsvector/internal/logger"
)

// TopK is the candidate count requested from each retrieval call.
const TopK = 5

// Defaults for the structured filter in the hybrid query: articles by a
// bylined reporter ("기자" is the byline suffix on the source site) with
// at least one reaction.
const (
	DefaultAuthorSuffix = "기자"
	DefaultMinReactions = 1
)

// Results carries the two independent result sets of one search. They are
// surfaced side by side, not merged into a single ranking.
type Results struct {
	Vector []VectorResult
	Hybrid []core.HybridHit

	// Per-branch errors; a failure in one branch never suppresses the
	// other branch's results.
	VectorErr error
	HybridErr error
}

// VectorResult pairs a nearest-neighbor hit with its resolved document.
type VectorResult struct {
	Hit      core.VectorHit
	Document *core.StoredArticle
}

// Engine answers free-text query intent with a pure vector search and a
// combined structured + lexical + vector query.
type Engine struct {
	embedder core.EmbedService
	store    core.ArticleStore
}

// NewEngine assembles a hybrid query engine.
func NewEngine(embedder core.EmbedService, st core.ArticleStore) *Engine {
	return &Engine{embedder: embedder, store: st}
}

// Search embeds articleText once and issues both retrieval calls. The
// calls are read-only and independent; an execution error in either is
// reported in Results and does not abort the other. Only an embedding
// failure, which leaves nothing to search with, fails the whole call.
func (e *Engine) Search(ctx context.Context, articleText, titleText string) (*Results, error) {
	vector, err := e.embedder.EmbedQuery(ctx, articleText)
	if err != nil {
		return nil, fmt.Errorf("embed query text: %w", err)
	}

	results := &Results{}
	results.Vector, results.VectorErr = e.vectorSearch(ctx, vector)
	if results.VectorErr != nil {
		logger.Error("Vector search failed: %v", results.VectorErr)
	}

	results.Hybrid, results.HybridErr = e.hybridSearch(ctx, vector, titleText)
	if results.HybridErr != nil {
		logger.Error("Hybrid search failed: %v", results.HybridErr)
	}

	return results, nil
}

// vectorSearch runs the pure nearest-neighbor branch and resolves each
// hit's stored document for display.
func (e *Engine) vectorSearch(ctx context.Context, vector []float32) ([]VectorResult, error) {
	hits, err := e.store.SearchByBody(ctx, vector, TopK)
	if err != nil {
		return nil, err
	}

	resolved := make([]VectorResult, 0, len(hits))
	for _, hit := range hits {
		doc, err := e.store.Get(ctx, hit.Key)
		if err != nil {
			logger.Warn("Could not resolve document %s: %v", hit.Key, err)
			resolved = append(resolved, VectorResult{Hit: hit})
			continue
		}
		resolved = append(resolved, VectorResult{Hit: hit, Document: doc})
	}
	return resolved, nil
}

// hybridSearch runs the combined query branch and orders the hits by
// relevance score, breaking ties by recency descending.
func (e *Engine) hybridSearch(ctx context.Context, vector []float32, titleText string) ([]core.HybridHit, error) {
	hits, err := e.store.HybridSearch(ctx, vector, titleText, DefaultAuthorSuffix, DefaultMinReactions, TopK)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		// published_at strings are chronologically sortable.
		return hits[i].PublishedAt > hits[j].PublishedAt
	})
	return hits, nil
}
