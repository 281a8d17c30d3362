package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"newsvector/internal/core"
	"newsvector/internal/logger"
)

// articleIDPattern extracts the source-site object id and article id from
// a canonical article URL. Both are needed by the counter endpoints.
var articleIDPattern = regexp.MustCompile(`/article/(\d+)/(\d+)`)

// enrich fetches the reaction and comment counters for an article. The
// two endpoints are independent and failure-isolated: any status, parse,
// or payload failure yields that counter's unavailable sentinel and never
// aborts enrichment.
func (c *Client) enrich(ctx context.Context, articleURL string) (reactions, comments core.Count) {
	match := articleIDPattern.FindStringSubmatch(articleURL)
	if match == nil {
		logger.Warn("Could not find object id or article id in URL: %s", articleURL)
		return core.CountUnavailable, core.CountUnavailable
	}
	oid, aid := match[1], match[2]

	return c.fetchReactionCount(ctx, oid, aid), c.fetchCommentCount(ctx, oid, aid)
}

// reactionPayload is the de-wrapped reaction endpoint response.
type reactionPayload struct {
	Contents []struct {
		Reactions []struct {
			Count int64 `json:"count"`
		} `json:"reactions"`
	} `json:"contents"`
}

func (c *Client) fetchReactionCount(ctx context.Context, oid, aid string) core.Count {
	url := fmt.Sprintf("%s/v1/search/contents?callback=&q=NEWS%%5Bne_%s_%s%%5D", c.likeBaseURL, oid, aid)

	var payload reactionPayload
	if err := c.getJSONP(ctx, url, &payload); err != nil {
		logger.Warn("Reaction count unavailable for %s/%s: %v", oid, aid, err)
		return core.CountUnavailable
	}

	if len(payload.Contents) == 0 || len(payload.Contents[0].Reactions) == 0 {
		return 0
	}
	return core.Count(payload.Contents[0].Reactions[0].Count)
}

// commentPayload is the de-wrapped comment endpoint response.
type commentPayload struct {
	Result *struct {
		Count struct {
			Comment int64 `json:"comment"`
		} `json:"count"`
	} `json:"result"`
}

func (c *Client) fetchCommentCount(ctx context.Context, oid, aid string) core.Count {
	url := fmt.Sprintf("%s/commentBox/cbox/web_naver_list_jsonp.json?ticket=news&templateId=view_politics&pool=cbox5&lang=ko&country=KR&objectId=news%s%%2C%s&pageSize=10&indexSize=10", c.commentBaseURL, oid, aid)

	var payload commentPayload
	if err := c.getJSONP(ctx, url, &payload); err != nil {
		logger.Warn("Comment count unavailable for %s/%s: %v", oid, aid, err)
		return core.CountUnavailable
	}

	if payload.Result == nil {
		return 0
	}
	return core.Count(payload.Result.Count.Comment)
}

// getJSONP performs a GET against a counter endpoint and decodes its
// JSONP-wrapped response body into v.
func (c *Client) getJSONP(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	return decodeJSONP(body, v)
}

// decodeJSONP strips the outer callback parentheses from a JSONP payload
// and parses the inner JSON.
func decodeJSONP(body []byte, v interface{}) error {
	inner := strings.Trim(strings.TrimSpace(string(body)), "();")
	if err := json.Unmarshal([]byte(inner), v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}
