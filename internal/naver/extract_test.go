package naver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsvector/internal/core"
)

const fullArticleHTML = `
<html><body>
<h2 id="title_area"><span>Election results roll in</span></h2>
<span class="media_end_head_info_datestamp_time _ARTICLE_DATE_TIME" data-date-time="2024-04-10 20:15:01">2024.04.10</span>
<em class="media_end_head_journalist_name">Jane Reporter 기자</em>
<article id="dic_area">Votes are being counted across the country.</article>
</body></html>`

func TestExtractFieldsAllPresent(t *testing.T) {
	article, err := extractFields(strings.NewReader(fullArticleHTML))
	require.NoError(t, err)

	assert.Equal(t, "Election results roll in", article.Title)
	assert.Equal(t, "2024-04-10 20:15:01", article.PublishedAt)
	assert.Equal(t, "Jane Reporter 기자", article.Author)
	assert.Equal(t, "Votes are being counted across the country.", article.Body)
}

func TestExtractFieldsMissingDate(t *testing.T) {
	// Title and byline present, no date tag at all.
	html := `
<html><body>
<h2 id="title_area">Test Headline</h2>
<em class="media_end_head_journalist_name">Jane Reporter</em>
<article id="dic_area">Some body text.</article>
</body></html>`

	article, err := extractFields(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Test Headline", article.Title)
	assert.Equal(t, core.UnknownDate, article.PublishedAt)
	assert.Equal(t, "Jane Reporter", article.Author)
	assert.Equal(t, "Some body text.", article.Body)
}

func TestExtractFieldsEmptyDocument(t *testing.T) {
	article, err := extractFields(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	assert.Equal(t, core.UnknownTitle, article.Title)
	assert.Equal(t, core.UnknownDate, article.PublishedAt)
	assert.Equal(t, core.UnknownReporter, article.Author)
	assert.Equal(t, core.NoContent, article.Body)
}

func TestExtractFieldsSentinelNeverReplacesPresentField(t *testing.T) {
	// Only the body is present; exactly the other fields default.
	html := `<html><body><article id="dic_area">Content only.</article></body></html>`

	article, err := extractFields(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, core.UnknownTitle, article.Title)
	assert.Equal(t, core.UnknownReporter, article.Author)
	assert.Equal(t, "Content only.", article.Body)
	assert.NotEqual(t, core.NoContent, article.Body)
}
