package video

import (
	"context"
	"fmt"
	"log/slog"

	"blogsmith/internal/utils/text"
)

// TitleFetcher resolves a video title, preferring yt-dlp metadata and
// falling back to scraping the watch page.
type TitleFetcher struct {
	client  *Client
	scraper *TitleScraper
}

// NewTitleFetcher creates a title fetcher from a yt-dlp client and a scraper.
func NewTitleFetcher(client *Client, scraper *TitleScraper) *TitleFetcher {
	return &TitleFetcher{client: client, scraper: scraper}
}

// FetchTitle returns the title of the video behind link, sanitized so it is
// safe to reuse as a filename.
func (f *TitleFetcher) FetchTitle(ctx context.Context, link string) (string, error) {
	title, err := f.client.Title(ctx, link)
	if err == nil {
		return text.SanitizeFilename(title), nil
	}

	slog.Warn("yt-dlp title lookup failed, scraping watch page",
		slog.Any("error", err))

	title, scrapeErr := f.scraper.ScrapeTitle(ctx, link)
	if scrapeErr != nil {
		return "", fmt.Errorf("FetchTitle: %w (scrape fallback: %v)", err, scrapeErr)
	}
	return text.SanitizeFilename(title), nil
}
