package video

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func TestTitleFromDocument_OGTitle(t *testing.T) {
	doc := parseHTML(t, `<html><head>
		<meta property="og:title" content="Go Concurrency Patterns">
		<title>Go Concurrency Patterns - YouTube</title>
	</head></html>`)

	title, err := titleFromDocument(doc)
	if err != nil {
		t.Fatalf("titleFromDocument err=%v", err)
	}
	if title != "Go Concurrency Patterns" {
		t.Errorf("want %q, got %q", "Go Concurrency Patterns", title)
	}
}

func TestTitleFromDocument_TitleTagFallback(t *testing.T) {
	doc := parseHTML(t, `<html><head>
		<title>Rust vs Go - YouTube</title>
	</head></html>`)

	title, err := titleFromDocument(doc)
	if err != nil {
		t.Fatalf("titleFromDocument err=%v", err)
	}
	if title != "Rust vs Go" {
		t.Errorf("want %q, got %q", "Rust vs Go", title)
	}
}

func TestTitleFromDocument_Empty(t *testing.T) {
	doc := parseHTML(t, `<html><head></head><body></body></html>`)

	if _, err := titleFromDocument(doc); err == nil {
		t.Fatal("expected error for page without title")
	}
}

func TestScrapeTitle_RejectsPrivateAddress(t *testing.T) {
	s := NewTitleScraper(http.DefaultClient)

	// loopback は SSRF ガードで弾く
	if _, err := s.ScrapeTitle(context.Background(), "http://127.0.0.1/watch?v=abc"); err == nil {
		t.Fatal("expected error for loopback address")
	}
}

func TestScrapeTitle_RejectsInvalidScheme(t *testing.T) {
	s := NewTitleScraper(http.DefaultClient)

	if _, err := s.ScrapeTitle(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}
