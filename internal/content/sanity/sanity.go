// Package sanity queries a Sanity dataset over its HTTP query API.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/guyfedwards/newsdesk/internal/content"
)

const DefaultAPIVersion = "2024-01-01"

// timestampLayout matches the millisecond timestamps Sanity stores, so GROQ's
// string comparison against publishedAt is exact at page boundaries.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL replaces the project host, e.g. for a local proxy.
	BaseURL string
	// RequestsPerSecond limits outgoing queries. Zero means unlimited.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	UserAgent         string
}

type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

func New(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" && cfg.BaseURL == "" {
		return nil, errors.New("sanity.New: project id is required")
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	base := cfg.BaseURL
	if base == "" {
		host := "api"
		if cfg.UseCDN {
			host = "apicdn"
		}
		base = fmt.Sprintf("https://%s.%s.sanity.io", cfg.ProjectID, host)
	}

	c := &Client{
		cfg:      cfg,
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, cfg.APIVersion, url.PathEscape(cfg.Dataset)),
		http:     cfg.HTTPClient,
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
	Message string `json:"message"`
}

// Error is returned for non-2xx responses from the query API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sanity: query failed with status %d: %s", e.StatusCode, e.Message)
}

// query runs a GROQ query. Params are JSON-encoded as $name parameters, which
// is how the query API expects them. A null result leaves out untouched and
// reports found=false.
func (c *Client) query(ctx context.Context, groq string, params map[string]any, out any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	q := url.Values{}
	q.Set("query", groq)
	for k, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return false, fmt.Errorf("encoding param %s: %w", k, err)
		}
		q.Set("$"+k, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return false, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e errorResponse
		msg := http.StatusText(res.StatusCode)
		if json.Unmarshal(body, &e) == nil {
			if e.Error.Description != "" {
				msg = e.Error.Description
			} else if e.Message != "" {
				msg = e.Message
			}
		}
		return false, &Error{StatusCode: res.StatusCode, Message: msg}
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return false, fmt.Errorf("decoding response: %w", err)
	}
	if len(qr.Result) == 0 || string(qr.Result) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(qr.Result, out); err != nil {
		return false, fmt.Errorf("decoding result: %w", err)
	}
	return true, nil
}

func (c *Client) Articles(ctx context.Context, before *time.Time, category string, limit int) ([]content.Article, error) {
	params := map[string]any{"lastPublishedAt": nil}
	if before != nil {
		params["lastPublishedAt"] = before.UTC().Format(timestampLayout)
	}
	if category != "" {
		params["category"] = category
	}

	var docs []article
	if _, err := c.query(ctx, feedQuery(category != "", limit), params, &docs); err != nil {
		return nil, fmt.Errorf("sanity.Articles: %w", err)
	}
	return toArticles(docs), nil
}

func (c *Client) ArticleBySlug(ctx context.Context, slug string) (*content.Article, error) {
	var doc article
	found, err := c.query(ctx, articleBySlugQuery, map[string]any{"slug": slug}, &doc)
	if err != nil {
		return nil, fmt.Errorf("sanity.ArticleBySlug: %w", err)
	}
	if !found {
		return nil, content.ErrNotFound
	}
	a := doc.toArticle()
	return &a, nil
}

func (c *Client) Related(ctx context.Context, excludeID string, limit int) ([]content.Article, error) {
	var docs []article
	if _, err := c.query(ctx, relatedQuery(limit), map[string]any{"currentId": excludeID}, &docs); err != nil {
		return nil, fmt.Errorf("sanity.Related: %w", err)
	}
	return toArticles(docs), nil
}

func (c *Client) Previous(ctx context.Context, t time.Time) (*content.Article, error) {
	return c.neighbour(ctx, previousQuery, t)
}

func (c *Client) Next(ctx context.Context, t time.Time) (*content.Article, error) {
	return c.neighbour(ctx, nextQuery, t)
}

func (c *Client) neighbour(ctx context.Context, groq string, t time.Time) (*content.Article, error) {
	var doc article
	found, err := c.query(ctx, groq, map[string]any{"publishedAt": t.UTC().Format(timestampLayout)}, &doc)
	if err != nil {
		return nil, fmt.Errorf("sanity.neighbour: %w", err)
	}
	if !found {
		return nil, nil
	}
	a := doc.toArticle()
	return &a, nil
}

func (c *Client) SiteSettings(ctx context.Context) (*content.SiteSettings, error) {
	var doc siteSettings
	found, err := c.query(ctx, siteSettingsQuery, nil, &doc)
	if err != nil {
		return nil, fmt.Errorf("sanity.SiteSettings: %w", err)
	}
	if !found {
		return nil, content.ErrNotFound
	}
	s := doc.toSettings()
	return &s, nil
}

func (c *Client) Tweets(ctx context.Context, limit int) ([]content.Tweet, error) {
	var docs []tweet
	if _, err := c.query(ctx, tweetsQuery(limit), nil, &docs); err != nil {
		return nil, fmt.Errorf("sanity.Tweets: %w", err)
	}
	tweets := make([]content.Tweet, 0, len(docs))
	for _, d := range docs {
		tweets = append(tweets, d.toTweet())
	}
	return tweets, nil
}
