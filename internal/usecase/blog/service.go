package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/repository"
)

// untitledFallback replaces the video title when metadata lookup fails.
// The pipeline keeps going: a missing title is not worth losing the article over.
const untitledFallback = "Untitled Video"

// TitleFetcher resolves the title of the video behind a link.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, link string) (string, error)
}

// Transcriber turns a video link into a transcript.
// Implementations own the download step, so a failure here covers both
// the media tool and the speech API.
type Transcriber interface {
	Transcribe(ctx context.Context, link string) (string, error)
}

// Generator produces a blog article from a transcript.
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

// Service provides blog post use cases.
// It orchestrates the generation pipeline and delegates persistence to the repository.
type Service struct {
	Repo        repository.BlogRepository
	Titles      TitleFetcher
	Transcriber Transcriber
	Generator   Generator
}

// Generate runs the full pipeline for the given link on behalf of userID:
// fetch title, download and transcribe audio, generate the article, persist.
// Nothing is persisted unless every stage succeeds.
// Returns ErrEmptyLink if the link is blank.
func (s *Service) Generate(ctx context.Context, userID int64, link string) (*entity.BlogPost, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, ErrEmptyLink
	}

	title, err := s.Titles.FetchTitle(ctx, link)
	if err != nil {
		slog.WarnContext(ctx, "title lookup failed, using fallback",
			slog.String("link", link),
			slog.Any("error", err))
		title = untitledFallback
	}

	transcript, err := s.Transcriber.Transcribe(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	content, err := s.Generator.Generate(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	post := &entity.BlogPost{
		UserID:           userID,
		YoutubeTitle:     title,
		YoutubeLink:      link,
		GeneratedContent: content,
		CreatedAt:        time.Now(),
	}
	if err := s.Repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return post, nil
}

// List retrieves all blog posts belonging to userID, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]*entity.BlogPost, error) {
	posts, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, nil
}

// Count returns the number of blog posts belonging to userID.
func (s *Service) Count(ctx context.Context, userID int64) (int64, error) {
	n, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return n, nil
}

// GetOwned retrieves a single blog post by ID, restricted to its owner.
// Returns ErrInvalidBlogID if the ID is not positive.
// Returns ErrBlogNotFound if the post does not exist.
// Returns ErrNotOwner if the post belongs to a different user.
func (s *Service) GetOwned(ctx context.Context, userID, id int64) (*entity.BlogPost, error) {
	if id <= 0 {
		return nil, ErrInvalidBlogID
	}

	post, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	if post == nil {
		return nil, ErrBlogNotFound
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}
	return post, nil
}
