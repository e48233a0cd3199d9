package jira

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ticketgraph/pkg/cache"
	"github.com/matzehuels/ticketgraph/pkg/config"
	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/httputil"
	"github.com/matzehuels/ticketgraph/pkg/issue"
	"github.com/matzehuels/ticketgraph/pkg/observability"
)

const (
	httpTimeout = 30 * time.Second
	searchPath  = "/rest/api/3/search"
	fieldPath   = "/rest/api/3/field"

	// bodySnippet caps how much of an error response ends up in messages.
	bodySnippet = 200
)

// baseFields are requested on every search; the flagged field is appended.
var baseFields = []string{"summary", "issuelinks", "issuetype", "status", "priority", "fixVersions"}

// Options configures a [Client]. Zero values select the defaults from
// package config.
type Options struct {
	FlaggedField string
	ReleaseName  string
	MaxResults   int
	PageSize     int

	Retry    httputil.Policy
	Cache    cache.Cache   // nil disables caching
	Keyer    cache.Keyer   // Defaults to a keyer scoped to the site and account
	CacheTTL time.Duration // Entries are only written when positive

	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to one Jira site with one account.
type Client struct {
	http    *http.Client
	creds   config.Credentials
	opts    Options
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
	headers map[string]string
}

// NewClient creates a client for the site and account in creds.
func NewClient(creds config.Credentials, opts Options) *Client {
	opts.FlaggedField = cmpOr(opts.FlaggedField, config.DefaultFlaggedField)
	opts.ReleaseName = cmpOr(opts.ReleaseName, config.DefaultReleaseName)
	if opts.MaxResults <= 0 {
		opts.MaxResults = config.DefaultMaxResults
	}
	if opts.PageSize <= 0 {
		opts.PageSize = config.DefaultPageSize
	}
	if opts.Retry.Attempts == 0 {
		opts.Retry = httputil.DefaultPolicy
	}

	c := &Client{
		http:    opts.HTTPClient,
		creds:   creds,
		opts:    opts,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		logger:  opts.Logger,
		headers: map[string]string{"Accept": "application/json"},
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: httpTimeout}
	}
	if c.cache == nil || opts.CacheTTL <= 0 {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), creds.Scope())
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Fields returns the comma-separated field list sent with every search.
func (c *Client) Fields() string {
	return strings.Join(append(baseFields[:len(baseFields):len(baseFields)], c.opts.FlaggedField), ",")
}

// Search fetches one page of results. Pages are served from the cache when
// one is configured.
func (c *Client) Search(ctx context.Context, jql string, startAt, maxResults int) (*SearchPage, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty query")
	}
	fields := c.Fields()

	q := url.Values{}
	q.Set("jql", jql)
	q.Set("fields", fields)
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("expand", "names")

	key := c.keyer.SearchKey(cache.SearchKeyOpts{
		JQL:        jql,
		Fields:     fields,
		StartAt:    startAt,
		MaxResults: maxResults,
	})

	var page SearchPage
	if err := c.cached(ctx, "search", key, c.apiURL(searchPath, q), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchIssues drains every page of the query, up to the configured maximum,
// and converts the results. Pages are requested one after another.
func (c *Client) FetchIssues(ctx context.Context, jql string) ([]issue.Issue, error) {
	raws, err := c.FetchRaw(ctx, jql)
	if err != nil {
		return nil, err
	}
	return ToIssues(raws, c.opts.FlaggedField, c.opts.ReleaseName)
}

// FetchRaw is [Client.FetchIssues] without the conversion.
func (c *Client) FetchRaw(ctx context.Context, jql string) ([]RawIssue, error) {
	limit := c.opts.MaxResults
	var all []RawIssue

	for startAt := 0; ; {
		size := min(c.opts.PageSize, limit-startAt)
		page, err := c.Search(ctx, jql, startAt, size)
		if err != nil {
			return nil, err
		}
		if startAt == 0 {
			c.reportFlaggedField(ctx, page.Names)
		}

		n := len(page.Issues)
		all = append(all, page.Issues...)
		c.logger.Debug("Fetched page", "start_at", startAt, "issues", n, "total", page.Total)

		if n == 0 || startAt+n >= min(limit, page.Total) {
			break
		}
		startAt += n
		if len(all) >= limit {
			break
		}
	}
	return all, nil
}

// ListFields returns every field defined on the site.
func (c *Client) ListFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.cached(ctx, "fields", c.keyer.FieldsKey(), c.apiURL(fieldPath, nil), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// reportFlaggedField logs which expanded field name looks like the
// impediment flag, falling back to listing candidates. Failures here are
// diagnostics only and never abort the fetch.
func (c *Client) reportFlaggedField(ctx context.Context, names map[string]string) {
	if id, ok := FlaggedFieldFromNames(names); ok {
		c.logger.Info("Flagged field via names", "field", id, "configured", c.opts.FlaggedField)
		if id != c.opts.FlaggedField {
			c.logger.Warn("Configured flagged field differs from the site's", "configured", c.opts.FlaggedField, "site", id)
		}
		return
	}

	fields, err := c.ListFields(ctx)
	if err != nil {
		c.logger.Warn("Could not list fields for flag candidates", "err", err)
		return
	}
	for _, f := range FlagCandidates(fields) {
		c.logger.Info("Flag candidate", "id", f.ID, "name", f.Name)
	}
}

// cached decodes the JSON at u into v, going through the cache. kind
// names the request for cache hooks.
func (c *Client) cached(ctx context.Context, kind, key, u string, v any) error {
	hooks := observability.Cache()
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		if json.Unmarshal(data, v) == nil {
			c.logger.Debug("Cache hit", "key", key)
			hooks.OnCacheHit(ctx, kind)
			return nil
		}
	}
	hooks.OnCacheMiss(ctx, kind)

	var body []byte
	err := c.opts.Retry.Do(ctx, func() error {
		b, err := c.get(ctx, u)
		body = b
		return err
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode %s", redact(u))
	}

	if c.opts.CacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.opts.CacheTTL); err != nil {
			c.logger.Warn("Cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, kind, len(body))
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.SetBasicAuth(c.creds.Email, c.creds.Token)

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Transient(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", redact(u)))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Transient(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", redact(u)))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.FromStatus(resp.StatusCode), "GET %s: status %d: %s",
			redact(u), resp.StatusCode, snippet(body))
	}
	return body, nil
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.creds.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// redact drops the query string, which carries the JQL.
func redact(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodySnippet {
		return s[:bodySnippet] + "..."
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}

func cmpOr(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
