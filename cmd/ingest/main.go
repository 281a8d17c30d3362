package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"newsvector/internal/config"
	"newsvector/internal/embed"
	"newsvector/internal/ingest"
	"newsvector/internal/logger"
	"newsvector/internal/naver"
	"newsvector/internal/store"
)

// Fixed batch parameters: the range of sequence identifiers to ingest.
const (
	startingArticleID = 2179100
	numArticles       = 400
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger.Init(*debug)
	logger.Info("Starting ingestion...")

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop the batch on SIGINT/SIGTERM. A killed run restarts from the
	// beginning of the range; there is no checkpoint state.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down...")
		cancel()
	}()

	st, err := store.Connect(ctx, store.Config{
		Addr:       cfg.MilvusAddr,
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Collection: cfg.Collection,
		Dim:        cfg.EmbeddingDim,
		Model:      cfg.EmbeddingModel,
	})
	if err != nil {
		logger.Error("Failed to connect to store: %v", err)
		os.Exit(1)
	}
	defer st.Close(context.Background())

	if err := st.EnsureCollection(ctx); err != nil {
		logger.Error("Failed to ensure collection: %v", err)
		os.Exit(1)
	}

	embedder, err := embed.NewTitanEmbedderFromRegion(ctx, cfg.AWSRegion, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		logger.Error("Failed to initialize embedding client: %v", err)
		os.Exit(1)
	}

	pipeline := ingest.NewPipeline(naver.NewClient(), embedder, st, ingest.DefaultDelay)

	stats, err := pipeline.Run(ctx, startingArticleID, numArticles)
	if err != nil {
		logger.Error("Ingestion run stopped: %v (stored=%d skipped=%d failed=%d)",
			err, stats.Stored, stats.Skipped, stats.Failed)
		os.Exit(1)
	}
}
