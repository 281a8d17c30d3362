package naver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsvector/internal/core"
)

// newTestClient points every endpoint at the given test servers.
func newTestClient(articleURL, likeURL, commentURL string) *Client {
	return &Client{
		articleBaseURL: articleURL,
		likeBaseURL:    likeURL,
		commentBaseURL: commentURL,
		pressID:        "138",
		httpClient:     &http.Client{Timeout: 5 * time.Second},
	}
}

func TestArticleURLZeroPadding(t *testing.T) {
	c := newTestClient("https://n.news.naver.com", "", "")
	assert.Equal(t, "https://n.news.naver.com/mnews/article/138/0002179100", c.ArticleURL(2179100))
	assert.Equal(t, "https://n.news.naver.com/mnews/article/138/0000000007", c.ArticleURL(7))
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL, server.URL)

	_, err := c.Fetch(context.Background(), 2179100)
	require.ErrorIs(t, err, ErrArticleNotFound)
}

func TestFetchSendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL, server.URL)
	_, _ = c.Fetch(context.Background(), 1)

	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetchMergesExtractionAndEnrichment(t *testing.T) {
	articles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fullArticleHTML)
	}))
	defer articles.Close()

	likes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `({"contents":[{"reactions":[{"count":42}]}]})`)
	}))
	defer likes.Close()

	comments := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `({"result":{"count":{"comment":17}}})`)
	}))
	defer comments.Close()

	c := newTestClient(articles.URL, likes.URL, comments.URL)

	article, err := c.Fetch(context.Background(), 2179100)
	require.NoError(t, err)

	assert.Equal(t, "Election results roll in", article.Title)
	assert.Equal(t, "Jane Reporter 기자", article.Author)
	assert.Equal(t, c.ArticleURL(2179100), article.SourceURL)
	assert.Equal(t, core.Count(42), article.ReactionCount)
	assert.Equal(t, core.Count(17), article.CommentCount)
}

func TestFetchStoresRecordDespiteMalformedEnrichment(t *testing.T) {
	articles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fullArticleHTML)
	}))
	defer articles.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `(not json at all`)
	}))
	defer broken.Close()

	c := newTestClient(articles.URL, broken.URL, broken.URL)

	article, err := c.Fetch(context.Background(), 2179100)
	require.NoError(t, err, "enrichment failure must not fail the record")

	assert.Equal(t, core.CountUnavailable, article.ReactionCount)
	assert.Equal(t, core.CountUnavailable, article.CommentCount)
	assert.Equal(t, "Election results roll in", article.Title)
}
