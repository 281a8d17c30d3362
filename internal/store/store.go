package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"newsvector/internal/core"
	"newsvector/internal/logger"
)

// Field names in the article collection.
const (
	FieldKey            = "key"
	FieldTitle          = "title"
	FieldPublishedAt    = "published_at"
	FieldAuthor         = "author"
	FieldBody           = "body"
	FieldSourceURL      = "source_url"
	FieldReactionCount  = "reaction_count"
	FieldCommentCount   = "comment_count"
	FieldEmbeddingModel = "embedding_model"
	FieldTitleVector    = "title_vector"
	FieldBodyVector     = "body_vector"
)

// Store is an explicit handle on the vector document store. It is
// constructed once and passed into every component that needs storage
// access; there is no ambient package-level connection.
type Store struct {
	client     *milvusclient.Client
	collection string
	dim        int
	model      string
}

// Config carries the connection parameters for the store.
type Config struct {
	Addr       string
	Username   string
	Password   string
	Collection string
	Dim        int
	Model      string
}

// Connect opens a connection to the vector store and returns the handle.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	logger.Info("Connecting to Milvus at %s (collection %s, dim %d)", cfg.Addr, cfg.Collection, cfg.Dim)

	c, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address:  cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Milvus: %w", err)
	}

	return &Store{
		client:     c,
		collection: cfg.Collection,
		dim:        cfg.Dim,
		model:      cfg.Model,
	}, nil
}

// Close closes the connection to the store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// Dim returns the embedding dimension the collection was built for.
func (s *Store) Dim() int {
	return s.dim
}

// Upsert inserts or overwrites one article document under its key.
func (s *Store) Upsert(ctx context.Context, doc *core.StoredArticle) error {
	if len(doc.TitleVector) != s.dim || len(doc.BodyVector) != s.dim {
		return fmt.Errorf("vector dimension mismatch: collection expects %d, got title=%d body=%d",
			s.dim, len(doc.TitleVector), len(doc.BodyVector))
	}

	cols := []column.Column{
		column.NewColumnVarChar(FieldKey, []string{doc.Key}),
		column.NewColumnVarChar(FieldTitle, []string{doc.Title}),
		column.NewColumnVarChar(FieldPublishedAt, []string{doc.PublishedAt}),
		column.NewColumnVarChar(FieldAuthor, []string{doc.Author}),
		column.NewColumnVarChar(FieldBody, []string{doc.Body}),
		column.NewColumnVarChar(FieldSourceURL, []string{doc.SourceURL}),
		column.NewColumnInt64(FieldReactionCount, []int64{int64(doc.ReactionCount)}),
		column.NewColumnInt64(FieldCommentCount, []int64{int64(doc.CommentCount)}),
		column.NewColumnVarChar(FieldEmbeddingModel, []string{doc.EmbeddingModel}),
		column.NewColumnFloatVector(FieldTitleVector, s.dim, [][]float32{doc.TitleVector}),
		column.NewColumnFloatVector(FieldBodyVector, s.dim, [][]float32{doc.BodyVector}),
	}

	_, err := s.client.Upsert(ctx, milvusclient.NewColumnBasedInsertOption(s.collection, cols...))
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", doc.Key, err)
	}
	return nil
}

// Get resolves one stored document by key. The vectors themselves are not
// fetched; callers needing them should re-embed instead.
func (s *Store) Get(ctx context.Context, key string) (*core.StoredArticle, error) {
	queryOpt := milvusclient.NewQueryOption(s.collection).
		WithFilter(fmt.Sprintf(`%s == %s`, FieldKey, quote(key))).
		WithOutputFields(FieldKey, FieldTitle, FieldPublishedAt, FieldAuthor, FieldBody,
			FieldSourceURL, FieldReactionCount, FieldCommentCount, FieldEmbeddingModel).
		WithLimit(1)

	result, err := s.client.Query(ctx, queryOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to query document %s: %w", key, err)
	}
	if result.ResultCount == 0 {
		return nil, fmt.Errorf("document %s not found", key)
	}

	doc := &core.StoredArticle{Key: key}
	doc.Title = columnString(result.GetColumn(FieldTitle), 0)
	doc.PublishedAt = columnString(result.GetColumn(FieldPublishedAt), 0)
	doc.Author = columnString(result.GetColumn(FieldAuthor), 0)
	doc.Body = columnString(result.GetColumn(FieldBody), 0)
	doc.SourceURL = columnString(result.GetColumn(FieldSourceURL), 0)
	doc.ReactionCount = core.Count(columnInt64(result.GetColumn(FieldReactionCount), 0))
	doc.CommentCount = core.Count(columnInt64(result.GetColumn(FieldCommentCount), 0))
	doc.EmbeddingModel = columnString(result.GetColumn(FieldEmbeddingModel), 0)
	return doc, nil
}

// columnString reads a string cell, returning "" for a missing column.
func columnString(col column.Column, i int) string {
	if col == nil || i >= col.Len() {
		return ""
	}
	v, err := col.GetAsString(i)
	if err != nil {
		logger.Warn("Error reading string column %s at %d: %v", col.Name(), i, err)
		return ""
	}
	return v
}

// columnInt64 reads an int64 cell, returning 0 for a missing column.
func columnInt64(col column.Column, i int) int64 {
	if col == nil || i >= col.Len() {
		return 0
	}
	v, err := col.GetAsInt64(i)
	if err != nil {
		logger.Warn("Error reading int64 column %s at %d: %v", col.Name(), i, err)
		return 0
	}
	return v
}
