package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"newsvector/internal/core"
	"newsvector/internal/logger"
)

// hnswEf is the search-time candidate pool for the HNSW index.
const hnswEf = 100

// modelGuard restricts results to documents embedded with the configured
// model. Mixing models in one index corrupts similarity semantics, so the
// guard is applied to every search.
func (s *Store) modelGuard() string {
	return fmt.Sprintf("%s == %s", FieldEmbeddingModel, quote(s.model))
}

// SearchByBody runs a pure vector nearest-neighbor search against the
// body vector index, requesting up to k candidates by similarity.
func (s *Store) SearchByBody(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error) {
	if k <= 0 {
		k = 5
	}

	searchOpt := milvusclient.NewSearchOption(s.collection, k, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(FieldBodyVector).
		WithFilter(s.modelGuard()).
		WithAnnParam(index.NewHNSWAnnParam(hnswEf)).
		WithOutputFields(FieldKey)

	results, err := s.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute vector search: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rs := results[0]
	hits := make([]core.VectorHit, 0, rs.ResultCount)
	for i := 0; i < rs.ResultCount; i++ {
		hit := core.VectorHit{Key: columnString(rs.IDs, i)}
		if i < len(rs.Scores) {
			hit.Score = rs.Scores[i]
		}
		hits = append(hits, hit)
	}
	logger.Debug("Vector search returned %d hits", len(hits))
	return hits, nil
}

// HybridSearch combines a structured filter (author suffix, minimum
// reaction count), a lexical match of titleText against the title field,
// and a KNN clause against the body vector, in one query.
func (s *Store) HybridSearch(ctx context.Context, vector []float32, titleText, authorSuffix string, minReactions int64, k int) ([]core.HybridHit, error) {
	if k <= 0 {
		k = 5
	}

	clauses := []string{
		fmt.Sprintf("%s like %s", FieldAuthor, quote("%"+authorSuffix)),
		fmt.Sprintf("%s >= %d", FieldReactionCount, minReactions),
		fmt.Sprintf("TEXT_MATCH(%s, %s)", FieldTitle, quote(titleText)),
		s.modelGuard(),
	}
	filter := strings.Join(clauses, " and ")
	logger.Debug("Hybrid search filter: %s", filter)

	searchOpt := milvusclient.NewSearchOption(s.collection, k, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(FieldBodyVector).
		WithFilter(filter).
		WithAnnParam(index.NewHNSWAnnParam(hnswEf)).
		WithOutputFields(FieldKey, FieldTitle, FieldPublishedAt, FieldAuthor, FieldSourceURL, FieldReactionCount)

	results, err := s.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute hybrid search: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rs := results[0]
	hits := make([]core.HybridHit, 0, rs.ResultCount)
	for i := 0; i < rs.ResultCount; i++ {
		hit := core.HybridHit{
			Key:           columnString(rs.IDs, i),
			Title:         columnString(rs.GetColumn(FieldTitle), i),
			PublishedAt:   columnString(rs.GetColumn(FieldPublishedAt), i),
			Author:        columnString(rs.GetColumn(FieldAuthor), i),
			SourceURL:     columnString(rs.GetColumn(FieldSourceURL), i),
			ReactionCount: core.Count(columnInt64(rs.GetColumn(FieldReactionCount), i)),
		}
		if i < len(rs.Scores) {
			hit.Score = rs.Scores[i]
		}
		hits = append(hits, hit)
	}
	logger.Debug("Hybrid search returned %d hits", len(hits))
	return hits, nil
}

// quote escapes a string for use in a Milvus filter expression.
func quote(s string) string {
	return strconv.Quote(s)
}
