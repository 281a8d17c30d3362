package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"newsvector/internal/config"
	"newsvector/internal/embed"
	"newsvector/internal/logger"
	"newsvector/internal/query"
	"newsvector/internal/store"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger.Init(*debug)

	cfg := config.Load()
	ctx := context.Background()

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

	embedder, err := embed.NewTitanEmbedderFromRegion(ctx, cfg.AWSRegion, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		logger.Error("Failed to initialize embedding client: %v", err)
		os.Exit(1)
	}

	engine := query.NewEngine(embedder, st)

	reader := bufio.NewReader(os.Stdin)
	articleText := prompt(reader, "Enter text to vector search in article : ")
	titleText := prompt(reader, "Enter text to search in title : ")

	if articleText == "" {
		fmt.Println("No query text given, exiting search.")
		return
	}

	results, err := engine.Search(ctx, articleText, titleText)
	if err != nil {
		logger.Error("Search failed: %v", err)
		os.Exit(1)
	}

	fmt.Print(query.FormatResults(results))
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
