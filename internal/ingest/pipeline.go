package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsvector/internal/core"
	"newsvector/internal/logger"
	"newsvector/internal/naver"
	"newsvector/internal/store"
)

// DefaultDelay bounds the request rate against the source site. It is
// applied after every iteration regardless of outcome.
const DefaultDelay = 1 * time.Second

// RunStats summarizes one ingestion run for the operator log.
type RunStats struct {
	Stored  int
	Skipped int
	Failed  int
}

// Pipeline drives the article fetcher over a contiguous identifier range,
// embeds each found article, and upserts the composite document. It is
// best-effort per article: one bad article never stops the batch.
type Pipeline struct {
	fetcher  core.ArticleFetcher
	embedder core.EmbedService
	store    core.ArticleStore
	delay    time.Duration

	// newKey generates a fresh storage key per stored document.
	newKey func() string
}

// NewPipeline assembles an ingestion pipeline.
func NewPipeline(fetcher core.ArticleFetcher, embedder core.EmbedService, st core.ArticleStore, delay time.Duration) *Pipeline {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Pipeline{
		fetcher:  fetcher,
		embedder: embedder,
		store:    st,
		delay:    delay,
		newKey:   store.NewArticleKey,
	}
}

// Run iterates count consecutive identifiers from startID. A missing
// article is end-of-range noise: logged and skipped, no retry. Embedding
// and storage failures are isolated to their article. There is no
// checkpoint state; a rerun over the same range stores every article
// again under fresh keys.
func (p *Pipeline) Run(ctx context.Context, startID int64, count int) (RunStats, error) {
	var stats RunStats

	for i := 0; i < count; i++ {
		seq := startID + int64(i)

		if err := p.ingestOne(ctx, seq); err != nil {
			switch {
			case errors.Is(err, naver.ErrArticleNotFound):
				logger.Info("No article found for ID: %d", seq)
				stats.Skipped++
			case ctx.Err() != nil:
				return stats, ctx.Err()
			default:
				logger.Error("Failed to ingest article %d: %v", seq, err)
				stats.Failed++
			}
		} else {
			stats.Stored++
		}

		// Fixed inter-request delay, an intentional serialization point.
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	logger.Info("Ingestion run complete: stored=%d skipped=%d failed=%d", stats.Stored, stats.Skipped, stats.Failed)
	return stats, nil
}

// ingestOne fetches, embeds, and stores a single article. Any error makes
// this article incomplete and surfaces to the caller; already-written
// articles are unaffected.
func (p *Pipeline) ingestOne(ctx context.Context, seq int64) error {
	article, err := p.fetcher.Fetch(ctx, seq)
	if err != nil {
		return err
	}

	titleVector, err := p.embedder.EmbedQuery(ctx, article.Title)
	if err != nil {
		return fmt.Errorf("embed title: %w", err)
	}
	bodyVector, err := p.embedder.EmbedQuery(ctx, article.Body)
	if err != nil {
		return fmt.Errorf("embed body: %w", err)
	}

	doc := &core.StoredArticle{
		Key:            p.newKey(),
		Article:        *article,
		TitleVector:    titleVector,
		BodyVector:     bodyVector,
		EmbeddingModel: p.embedder.ModelID(),
	}

	if err := p.store.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("upsert key %s: %w", doc.Key, err)
	}

	logger.Info("Inserted article with key: %s", doc.Key)
	return nil
}
