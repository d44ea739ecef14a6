// Package openlibrary searches the Open Library catalog and normalizes its
// documents into Book records.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL      = "https://openlibrary.org"
	DefaultCoverBaseURL = "https://covers.openlibrary.org"
	ResultLimit         = 10

	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownYear   = "Unknown Year"
)

// Year is a first-publication year. Zero means unknown and encodes as the
// string "Unknown Year"; any other value encodes as a JSON number.
type Year int

func (y Year) MarshalJSON() ([]byte, error) {
	if y == 0 {
		return json.Marshal(UnknownYear)
	}
	return []byte(strconv.Itoa(int(y))), nil
}

func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}
	*y = 0
	return nil
}

type Book struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   Year    `json:"year"`
	Cover  *string `json:"cover"`
}

type searchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []doc `json:"docs"`
}

type doc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int      `json:"cover_i"`
}

// Client queries /search.json. Zero-value fields fall back to the public
// endpoints and http.DefaultClient.
type Client struct {
	BaseURL      string
	CoverBaseURL string
	HTTPClient   *http.Client
	UserAgent    string
}

func NewClient(baseURL, coverBaseURL string) *Client {
	return &Client{
		BaseURL:      baseURL,
		CoverBaseURL: coverBaseURL,
		HTTPClient:   &http.Client{},
	}
}

// Name identifies the catalog in logs and cache keys.
func (c *Client) Name() string { return "openlibrary" }

// Search returns at most ResultLimit books for query. A blank query returns
// an empty slice without touching the network; failures are returned as-is.
func (c *Client) Search(ctx context.Context, query string) ([]Book, error) {
	books := []Book{}
	if strings.TrimSpace(query) == "" {
		return books, nil
	}

	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(ResultLimit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search.json?"+params.Encode(), nil)
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
		return nil, fmt.Errorf("open library request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open library returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing open library response: %w", err)
	}

	for i, d := range sr.Docs {
		if i >= ResultLimit {
			break
		}
		books = append(books, c.normalize(d))
	}
	return books, nil
}

func (c *Client) normalize(d doc) Book {
	b := Book{
		Title:  d.Title,
		Author: strings.Join(d.AuthorName, ", "),
		Year:   Year(d.FirstPublishYear),
	}
	if b.Title == "" {
		b.Title = UnknownTitle
	}
	if b.Author == "" {
		b.Author = UnknownAuthor
	}
	if d.CoverI != 0 {
		cover := CoverURL(c.CoverBaseURL, d.CoverI)
		b.Cover = &cover
	}
	return b
}

// CoverURL returns the medium-size cover image URL for a cover id.
func CoverURL(coverBaseURL string, coverID int) string {
	base := strings.TrimRight(coverBaseURL, "/")
	if base == "" {
		base = DefaultCoverBaseURL
	}
	return fmt.Sprintf("%s/b/id/%d-M.jpg", base, coverID)
}
