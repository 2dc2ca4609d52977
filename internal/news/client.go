package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Article is one news item as returned by the provider.
type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

type response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Query describes one provider request. Exactly one of Q and QInTitle is set
// per aggregation stage.
type Query struct {
	Q        string
	QInTitle string
	Language string
	SortBy   string
	PageSize int
}

// Provider fetches articles for a query. Satisfied by Client and by test fakes.
type Provider interface {
	Everything(ctx context.Context, q Query) ([]Article, error)
}

// Client talks to the NewsAPI "everything" endpoint.
type Client struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = "https://newsapi.org/v2/everything"
	}
	return &Client{
		APIKey:     apiKey,
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Everything(ctx context.Context, q Query) ([]Article, error) {
	params := url.Values{}
	if q.Q != "" {
		params.Add("q", q.Q)
	}
	if q.QInTitle != "" {
		params.Add("qInTitle", q.QInTitle)
	}
	if q.Language != "" {
		params.Add("language", q.Language)
	}
	if q.SortBy != "" {
		params.Add("sortBy", q.SortBy)
	}
	if q.PageSize > 0 {
		params.Add("pageSize", strconv.Itoa(q.PageSize))
	}
	params.Add("apiKey", c.APIKey)

	reqURL := fmt.Sprintf("%s?%s", c.Endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	// A non-ok status is treated the same as empty results.
	if result.Status != "ok" {
		return nil, nil
	}
	return result.Articles, nil
}
