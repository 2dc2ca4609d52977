package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ReaderResult is the readable extraction of one article page.
type ReaderResult struct {
	Title    string `json:"title"`
	Byline   string `json:"byline"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	SiteName string `json:"site_name,omitempty"`
}

// Reader fetches an article page and extracts its readable text so students
// can read news in-app.
type Reader struct {
	HTTPClient *http.Client
}

func NewReader() *Reader {
	return &Reader{HTTPClient: &http.Client{Timeout: 15 * time.Second}}
}

func (r *Reader) Read(ctx context.Context, rawURL string) (ReaderResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ReaderResult{}, fmt.Errorf("invalid article url")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return ReaderResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "sixbits/1.0")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return ReaderResult{}, fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ReaderResult{}, fmt.Errorf("article fetch returned %s", resp.Status)
	}

	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return ReaderResult{}, fmt.Errorf("failed to extract article: %w", err)
	}
	return ReaderResult{
		Title:    article.Title,
		Byline:   article.Byline,
		Content:  article.TextContent,
		Excerpt:  article.Excerpt,
		SiteName: article.SiteName,
	}, nil
}
