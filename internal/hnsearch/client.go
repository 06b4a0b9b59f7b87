package hnsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Story is the subset of Algolia search hit fields required by the app.
type Story struct {
	ID          string   `json:"objectID"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	CreatedAt   string   `json:"created_at"`
	URL         string   `json:"url"`
	Points      int      `json:"points"`
	NumComments int      `json:"num_comments"`
	StoryText   string   `json:"story_text"`
	Tags        []string `json:"_tags"`
}

// Page is one page of front page results. PageIndex is zero-based.
type Page struct {
	Stories    []Story
	PageIndex  int
	TotalPages int
}

type searchEnvelope struct {
	Hits    []Story `json:"hits"`
	Page    int     `json:"page"`
	NbPages int     `json:"nbPages"`
}

type Client struct {
	baseURL     string
	hitsPerPage int
	http        *http.Client
}

func NewClient(baseURL string, hitsPerPage int, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if hitsPerPage < 1 {
		hitsPerPage = 20
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		hitsPerPage: hitsPerPage,
		http:        httpClient,
	}
}

// SearchFrontPage fetches one page of stories tagged front_page.
func (c *Client) SearchFrontPage(ctx context.Context, page int) (Page, error) {
	if page < 0 {
		page = 0
	}

	q := make(url.Values)
	q.Set("tags", "front_page")
	q.Set("page", strconv.Itoa(page))
	q.Set("hitsPerPage", strconv.Itoa(c.hitsPerPage))

	req, err := c.newRequest(ctx, "/search?"+q.Encode())
	if err != nil {
		return Page{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("front page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Page{}, fmt.Errorf("front page request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Page{}, fmt.Errorf("decode front page response: %w", err)
	}

	return Page{
		Stories:    envelope.Hits,
		PageIndex:  envelope.Page,
		TotalPages: envelope.NbPages,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
