package naver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"newsvector/internal/core"
	"newsvector/internal/logger"
)

// ErrArticleNotFound reports that no article exists at a sequence
// position. Missing articles are an expected, skippable outcome, not a
// fatal condition.
var ErrArticleNotFound = errors.New("article not found")

// Source sites reject default Go clients, so requests carry a realistic
// browser identification header.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// seqWidth is the zero-padded width of a sequence identifier in article URLs.
const seqWidth = 10

// Client fetches news articles and their engagement counters from the
// source site.
type Client struct {
	articleBaseURL string
	likeBaseURL    string
	commentBaseURL string
	pressID        string
	httpClient     *http.Client
}

// NewClient creates a news source client with production endpoints.
func NewClient() *Client {
	return &Client{
		articleBaseURL: "https://n.news.naver.com",
		likeBaseURL:    "https://news.like.naver.com",
		commentBaseURL: "https://apis.naver.com",
		pressID:        "138",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ArticleURL maps a sequence identifier to the article's canonical URL.
// The identifier is zero-padded to a fixed width.
func (c *Client) ArticleURL(seq int64) string {
	return fmt.Sprintf("%s/mnews/article/%s/%0*d", c.articleBaseURL, c.pressID, seqWidth, seq)
}

// Fetch resolves a sequence position to one structured article record.
// A non-success HTTP status maps to ErrArticleNotFound.
func (c *Client) Fetch(ctx context.Context, seq int64) (*core.Article, error) {
	url := c.ArticleURL(seq)
	logger.Info("Fetching article: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Info("Failed to fetch article %s, status code: %d", url, resp.StatusCode)
		return nil, fmt.Errorf("%w: %s (status %d)", ErrArticleNotFound, url, resp.StatusCode)
	}

	article, err := extractFields(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}
	article.SourceURL = url

	reactions, comments := c.enrich(ctx, url)
	article.ReactionCount = reactions
	article.CommentCount = comments

	logger.Info("Scraped article: %s by %s", article.Title, article.Author)
	return article, nil
}
