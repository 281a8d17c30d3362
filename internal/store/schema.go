package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"newsvector/internal/logger"
)

// VarChar length limits used across the schema.
const (
	maxTextLength = "65535"
	maxIDLength   = "255"
	maxURLLength  = "1024"
)

// EnsureCollection ensures the article collection exists with the correct
// schema and vector indexes, and loads it into memory for searching.
func (s *Store) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("failed to check if collection exists: %w", err)
	}

	if !exists {
		schema := &entity.Schema{
			CollectionName: s.collection,
			Description:    "News articles with title and body embeddings",
			Fields: []*entity.Field{
				{
					Name:       FieldKey,
					DataType:   entity.FieldTypeVarChar,
					PrimaryKey: true,
					AutoID:     false,
					TypeParams: map[string]string{
						"max_length": maxIDLength,
					},
				},
				{
					Name:     FieldTitle,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxTextLength,
						// Lexical match against the title is part of the
						// hybrid query, so the field needs an analyzer.
						"enable_analyzer": "true",
						"enable_match":    "true",
					},
				},
				{
					Name:     FieldPublishedAt,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxIDLength,
					},
				},
				{
					Name:     FieldAuthor,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxIDLength,
					},
				},
				{
					Name:     FieldBody,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxTextLength,
					},
				},
				{
					Name:     FieldSourceURL,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxURLLength,
					},
				},
				{
					Name:     FieldReactionCount,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:     FieldCommentCount,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:     FieldEmbeddingModel,
					DataType: entity.FieldTypeVarChar,
					TypeParams: map[string]string{
						"max_length": maxIDLength,
					},
				},
				{
					Name:     FieldTitleVector,
					DataType: entity.FieldTypeFloatVector,
					TypeParams: map[string]string{
						"dim": fmt.Sprintf("%d", s.dim),
					},
				},
				{
					Name:     FieldBodyVector,
					DataType: entity.FieldTypeFloatVector,
					TypeParams: map[string]string{
						"dim": fmt.Sprintf("%d", s.dim),
					},
				},
			},
		}

		createOpt := milvusclient.NewCreateCollectionOption(s.collection, schema)
		if err := s.client.CreateCollection(ctx, createOpt); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}

		// Vectors are normalized, so inner product ranks like cosine.
		for _, field := range []string{FieldTitleVector, FieldBodyVector} {
			idx := index.NewHNSWIndex(entity.IP, 16, 200)
			indexOpt := milvusclient.NewCreateIndexOption(s.collection, field, idx)
			if _, err := s.client.CreateIndex(ctx, indexOpt); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", field, err)
			}
		}

		logger.Info("Created collection with vector indexes: %s", s.collection)
	}

	loadOpt := milvusclient.NewLoadCollectionOption(s.collection)
	if _, err := s.client.LoadCollection(ctx, loadOpt); err != nil {
		return fmt.Errorf("failed to load collection %s into memory: %w", s.collection, err)
	}

	return nil
}
