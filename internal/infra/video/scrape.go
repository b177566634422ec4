package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogsmith/internal/domain/entity"
)

// maxScrapeBodySize limits watch page downloads to 5MB.
const maxScrapeBodySize = 5 * 1024 * 1024

// TitleScraper extracts a video title from the watch page HTML.
// It is the fallback when yt-dlp cannot resolve metadata.
type TitleScraper struct {
	client *http.Client
}

// NewTitleScraper creates a new title scraper with the given HTTP client.
func NewTitleScraper(client *http.Client) *TitleScraper {
	return &TitleScraper{client: client}
}

// ScrapeTitle fetches the watch page and returns its og:title, falling back
// to the <title> element with the trailing " - YouTube" suffix removed.
func (s *TitleScraper) ScrapeTitle(ctx context.Context, link string) (string, error) {
	// SSRF guard: the link is user supplied.
	if err := entity.ValidateURL(link); err != nil {
		return "", fmt.Errorf("ScrapeTitle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("ScrapeTitle: create request: %w", err)
	}
	req.Header.Set("User-Agent", "BlogsmithBot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ScrapeTitle: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ScrapeTitle: unexpected status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxScrapeBodySize))
	if err != nil {
		return "", fmt.Errorf("ScrapeTitle: parse HTML: %w", err)
	}

	title, err := titleFromDocument(doc)
	if err != nil {
		return "", fmt.Errorf("ScrapeTitle: %w", err)
	}
	return title, nil
}

// titleFromDocument extracts og:title from a parsed watch page, falling back
// to the <title> element with the trailing " - YouTube" suffix removed.
func titleFromDocument(doc *goquery.Document) (string, error) {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title, nil
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSuffix(title, " - YouTube")
	if title == "" {
		return "", errors.New("no title found in page")
	}
	return title, nil
}
