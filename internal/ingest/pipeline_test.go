package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsvector/internal/core"
	"newsvector/internal/naver"
)

// fakeFetcher serves articles from a fixed map; anything else is not found.
type fakeFetcher struct {
	articles map[int64]*core.Article
	fetched  []int64
}

func (f *fakeFetcher) Fetch(ctx context.Context, seq int64) (*core.Article, error) {
	f.fetched = append(f.fetched, seq)
	if a, ok := f.articles[seq]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: seq %d", naver.ErrArticleNotFound, seq)
}

// fakeEmbedder returns fixed-dimension vectors and can fail on demand.
type fakeEmbedder struct {
	dim      int
	failText string
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.failText != "" && text == f.failText {
		return nil, errors.New("embedding provider error: simulated transport failure")
	}
	return make([]float32, f.dim), nil
}

func (f *fakeEmbedder) ModelID() string { return "fake-embed-model" }

// fakeStore records upserts in order and can fail specific keys.
type fakeStore struct {
	docs      []*core.StoredArticle
	failAfter int // fail every upsert once this many docs are stored; 0 disables
}

func (f *fakeStore) Upsert(ctx context.Context, doc *core.StoredArticle) error {
	if f.failAfter > 0 && len(f.docs) >= f.failAfter {
		return errors.New("storage write error")
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (*core.StoredArticle, error) {
	for _, doc := range f.docs {
		if doc.Key == key {
			return doc, nil
		}
	}
	return nil, fmt.Errorf("document %s not found", key)
}

func (f *fakeStore) SearchByBody(ctx context.Context, vector []float32, k int) ([]core.VectorHit, error) {
	return nil, nil
}

func (f *fakeStore) HybridSearch(ctx context.Context, vector []float32, titleText, authorSuffix string, minReactions int64, k int) ([]core.HybridHit, error) {
	return nil, nil
}

func testArticle(title string) *core.Article {
	return &core.Article{
		Title:         title,
		PublishedAt:   "2024-04-10 20:15:01",
		Author:        "Jane Reporter 기자",
		Body:          "body of " + title,
		ReactionCount: 3,
		CommentCount:  1,
	}
}

func newTestPipeline(f *fakeFetcher, e *fakeEmbedder, s *fakeStore) *Pipeline {
	return NewPipeline(f, e, s, time.Millisecond)
}

func TestRunSkipsMissingArticles(t *testing.T) {
	fetcher := &fakeFetcher{articles: map[int64]*core.Article{
		100: testArticle("first"),
		102: testArticle("third"),
	}}
	st := &fakeStore{}

	stats, err := newTestPipeline(fetcher, &fakeEmbedder{dim: 4}, st).Run(context.Background(), 100, 3)
	require.NoError(t, err)

	assert.Equal(t, RunStats{Stored: 2, Skipped: 1}, stats)
	assert.Equal(t, []int64{100, 101, 102}, fetcher.fetched, "a gap never stops the range")
	require.Len(t, st.docs, 2)

	doc := st.docs[0]
	assert.Equal(t, "first", doc.Title)
	assert.Equal(t, "fake-embed-model", doc.EmbeddingModel)
	assert.Len(t, doc.TitleVector, 4)
	assert.Len(t, doc.BodyVector, 4)
}

func TestRunIsNotIdempotent(t *testing.T) {
	// Re-running over an already-ingested range appends a full set of
	// duplicate documents under fresh keys. This is the current behavior,
	// not an accident of the test.
	fetcher := &fakeFetcher{articles: map[int64]*core.Article{
		100: testArticle("a"),
		101: testArticle("b"),
	}}
	st := &fakeStore{}
	p := newTestPipeline(fetcher, &fakeEmbedder{dim: 4}, st)

	_, err := p.Run(context.Background(), 100, 2)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), 100, 2)
	require.NoError(t, err)

	assert.Len(t, st.docs, 4, "rerun stores count additional documents, not zero")

	keys := make(map[string]bool)
	for _, doc := range st.docs {
		assert.False(t, keys[doc.Key], "every stored document has its own key")
		keys[doc.Key] = true
	}
}

func TestRunEmbeddingFailureIsolatedToArticle(t *testing.T) {
	fetcher := &fakeFetcher{articles: map[int64]*core.Article{
		100: testArticle("good one"),
		101: testArticle("bad one"),
		102: testArticle("another good one"),
	}}
	st := &fakeStore{}
	embedder := &fakeEmbedder{dim: 4, failText: "bad one"}

	stats, err := newTestPipeline(fetcher, embedder, st).Run(context.Background(), 100, 3)
	require.NoError(t, err, "a per-article embedding failure never aborts the run")

	assert.Equal(t, RunStats{Stored: 2, Failed: 1}, stats)
	require.Len(t, st.docs, 2, "prior and later articles are unaffected")
	assert.Equal(t, "good one", st.docs[0].Title)
	assert.Equal(t, "another good one", st.docs[1].Title)
}

func TestRunUpsertFailureIsolatedToArticle(t *testing.T) {
	fetcher := &fakeFetcher{articles: map[int64]*core.Article{
		100: testArticle("stored"),
		101: testArticle("rejected"),
	}}
	st := &fakeStore{failAfter: 1}

	stats, err := newTestPipeline(fetcher, &fakeEmbedder{dim: 4}, st).Run(context.Background(), 100, 2)
	require.NoError(t, err)

	assert.Equal(t, RunStats{Stored: 1, Failed: 1}, stats)
	assert.Len(t, st.docs, 1, "the bad write does not roll back prior articles")
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{articles: map[int64]*core.Article{100: testArticle("a")}}
	st := &fakeStore{}

	_, err := newTestPipeline(fetcher, &fakeEmbedder{dim: 4}, st).Run(ctx, 100, 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(fetcher.fetched), 5, "cancellation stops the batch early")
}
