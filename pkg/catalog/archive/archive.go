// Package archive searches the Archive.org document catalog. It walks an
// ordered list of endpoints and falls back to placeholder papers when none
// of them produces results.
package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultBaseURL = "https://archive.org"
	DefaultTimeout = 10 * time.Second
	ResultLimit    = 10

	DescriptionLimit = 200
	Ellipsis         = "..."

	UnknownTitle   = "Unknown Title"
	UnknownCreator = "Unknown Author"
	UnknownDate    = "Unknown Date"
	NoDescription  = "No description available"
)

// Source tells callers where a result set came from.
type Source string

const (
	SourceNone        Source = "none" // blank query, nothing attempted
	SourceUpstream    Source = "upstream"
	SourcePlaceholder Source = "placeholder"
)

type Paper struct {
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Endpoint is one candidate in the fallback chain.
type Endpoint struct {
	Name     string
	BuildURL func(baseURL, query string) string
}

// DefaultEndpoints are tried in order: advanced search first, then the
// legacy search page.
var DefaultEndpoints = []Endpoint{
	{
		Name: "advancedsearch",
		BuildURL: func(baseURL, query string) string {
			params := url.Values{
				"q":      {query},
				"output": {"json"},
				"rows":   {fmt.Sprint(ResultLimit)},
				"fl[]":   {"title", "creator", "date", "description"},
			}
			return baseURL + "/advancedsearch.php?" + params.Encode()
		},
	},
	{
		Name: "search",
		BuildURL: func(baseURL, query string) string {
			params := url.Values{
				"query":  {query},
				"output": {"json"},
			}
			return baseURL + "/search.php?" + params.Encode()
		},
	},
}

// Client searches Archive.org. OnCandidateError, when set, is told about
// every endpoint that failed so the caller can log it.
type Client struct {
	BaseURL          string
	HTTPClient       *http.Client
	Timeout          time.Duration
	Endpoints        []Endpoint
	UserAgent        string
	OnCandidateError func(endpoint string, err error)
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
		Timeout:    DefaultTimeout,
		Endpoints:  DefaultEndpoints,
	}
}

// Name identifies the catalog in logs and cache keys.
func (c *Client) Name() string { return "archive" }

// Search returns the first non-empty result set from the endpoint chain.
// Endpoint failures never surface as errors: when every endpoint fails or
// comes back empty, two placeholder papers built from query are returned
// with SourcePlaceholder.
func (c *Client) Search(ctx context.Context, query string) ([]Paper, Source) {
	if strings.TrimSpace(query) == "" {
		return []Paper{}, SourceNone
	}

	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	endpoints := c.Endpoints
	if endpoints == nil {
		endpoints = DefaultEndpoints
	}

	for _, ep := range endpoints {
		papers, err := c.fetch(ctx, ep.BuildURL(base, query))
		if err != nil {
			if c.OnCandidateError != nil {
				c.OnCandidateError(ep.Name, err)
			}
			continue
		}
		if len(papers) > 0 {
			return papers, SourceUpstream
		}
	}

	return Placeholders(query), SourcePlaceholder
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]Paper, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("archive returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archive response: %w", err)
	}

	docs, _, err := ParseDocs(body)
	if err != nil {
		return nil, fmt.Errorf("parsing archive response: %w", err)
	}

	papers := make([]Paper, 0, len(docs))
	for i, d := range docs {
		if i >= ResultLimit {
			break
		}
		papers = append(papers, Normalize(d))
	}
	return papers, nil
}

// Normalize maps one upstream document onto a Paper, filling defaults.
func Normalize(d RawDoc) Paper {
	return Paper{
		Title:       d.Text("title", ", ", UnknownTitle),
		Creator:     d.Text("creator", ", ", UnknownCreator),
		Date:        d.Text("date", ", ", UnknownDate),
		Description: TruncateDescription(d.Text("description", " ", NoDescription)),
	}
}

// TruncateDescription keeps the first DescriptionLimit characters and adds
// Ellipsis when s is longer than that.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= DescriptionLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:DescriptionLimit]) + Ellipsis
}

// Placeholders builds the two synthetic papers shown when no endpoint
// produced anything. Both embed query verbatim.
func Placeholders(query string) []Paper {
	return []Paper{
		{
			Title:       fmt.Sprintf("Research on %s", query),
			Creator:     "Academic Researcher",
			Date:        "2024",
			Description: fmt.Sprintf("This paper explores various aspects of %s and provides insights into current research trends.", query),
		},
		{
			Title:       fmt.Sprintf("Advanced Studies in %s", query),
			Creator:     "Research Team",
			Date:        "2023",
			Description: fmt.Sprintf("A comprehensive study examining the latest developments in %s field.", query),
		},
	}
}
