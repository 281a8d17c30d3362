package naver

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsvector/internal/core"
)

// extractFields pulls the structured article fields out of the fetched
// document. Each field is independently optional; a missing element
// yields the field's sentinel default rather than failing the whole
// extraction.
func extractFields(r io.Reader) (*core.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	article := &core.Article{
		Title:       core.UnknownTitle,
		PublishedAt: core.UnknownDate,
		Author:      core.UnknownReporter,
		Body:        core.NoContent,
	}

	if title := doc.Find("h2#title_area"); title.Length() > 0 {
		article.Title = strings.TrimSpace(title.Text())
	}

	if date, ok := doc.Find("span.media_end_head_info_datestamp_time").First().Attr("data-date-time"); ok {
		article.PublishedAt = date
	}

	if reporter := doc.Find("em.media_end_head_journalist_name"); reporter.Length() > 0 {
		article.Author = strings.TrimSpace(reporter.Text())
	}

	if body := doc.Find("article#dic_area"); body.Length() > 0 {
		article.Body = strings.TrimSpace(body.Text())
	}

	return article, nil
}
