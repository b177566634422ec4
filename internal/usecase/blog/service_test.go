package blog_test

import (
	"context"
	"errors"
	"testing"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/usecase/blog"
)

/* ─────────── フェイク ─────────── */

type fakeBlogRepo struct {
	posts   map[int64]*entity.BlogPost
	created []*entity.BlogPost
	err     error
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: map[int64]*entity.BlogPost{}}
}

func (f *fakeBlogRepo) Create(_ context.Context, post *entity.BlogPost) error {
	if f.err != nil {
		return f.err
	}
	post.ID = int64(len(f.created) + 1)
	f.created = append(f.created, post)
	f.posts[post.ID] = post
	return nil
}

func (f *fakeBlogRepo) Get(_ context.Context, id int64) (*entity.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[id], nil
}

func (f *fakeBlogRepo) ListByUser(_ context.Context, userID int64) ([]*entity.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.BlogPost
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) CountByUser(_ context.Context, userID int64) (int64, error) {
	posts, _ := f.ListByUser(context.Background(), userID)
	return int64(len(posts)), nil
}

type fakeTitles struct {
	title string
	err   error
}

func (f *fakeTitles) FetchTitle(_ context.Context, _ string) (string, error) {
	return f.title, f.err
}

type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.transcript, f.err
}

type fakeGenerator struct {
	article string
	err     error
	calls   int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.article, f.err
}

func newService(repo *fakeBlogRepo, titles *fakeTitles, tr *fakeTranscriber, gen *fakeGenerator) *blog.Service {
	return &blog.Service{
		Repo:        repo,
		Titles:      titles,
		Transcriber: tr,
		Generator:   gen,
	}
}

/* ─────────── 1. Generate ─────────── */

func TestService_Generate(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newService(repo,
		&fakeTitles{title: "Go Talk"},
		&fakeTranscriber{transcript: "hello"},
		&fakeGenerator{article: "article body"})

	post, err := svc.Generate(context.Background(), 7, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	if post.ID == 0 {
		t.Error("want persisted post with ID")
	}
	if post.UserID != 7 {
		t.Errorf("want UserID=7, got %d", post.UserID)
	}
	if post.YoutubeTitle != "Go Talk" {
		t.Errorf("want title %q, got %q", "Go Talk", post.YoutubeTitle)
	}
	if post.GeneratedContent != "article body" {
		t.Errorf("want content %q, got %q", "article body", post.GeneratedContent)
	}
}

func TestService_Generate_EmptyLink(t *testing.T) {
	svc := newService(newFakeBlogRepo(), &fakeTitles{}, &fakeTranscriber{}, &fakeGenerator{})

	for _, link := range []string{"", "   "} {
		if _, err := svc.Generate(context.Background(), 1, link); !errors.Is(err, blog.ErrEmptyLink) {
			t.Errorf("link=%q: want ErrEmptyLink, got %v", link, err)
		}
	}
}

func TestService_Generate_TitleFallback(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newService(repo,
		&fakeTitles{err: errors.New("metadata unavailable")},
		&fakeTranscriber{transcript: "hello"},
		&fakeGenerator{article: "body"})

	post, err := svc.Generate(context.Background(), 1, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	if post.YoutubeTitle != "Untitled Video" {
		t.Errorf("want fallback title, got %q", post.YoutubeTitle)
	}
}

func TestService_Generate_TranscriptionFailure(t *testing.T) {
	repo := newFakeBlogRepo()
	gen := &fakeGenerator{article: "body"}
	svc := newService(repo,
		&fakeTitles{title: "t"},
		&fakeTranscriber{err: entity.ErrTranscriptionFailed},
		gen)

	_, err := svc.Generate(context.Background(), 1, "https://youtu.be/abc")
	if !errors.Is(err, entity.ErrTranscriptionFailed) {
		t.Fatalf("want ErrTranscriptionFailed, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run after transcription failure")
	}
	if len(repo.created) != 0 {
		t.Error("nothing must be persisted after transcription failure")
	}
}

func TestService_Generate_GenerationFailure(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := newService(repo,
		&fakeTitles{title: "t"},
		&fakeTranscriber{transcript: "hello"},
		&fakeGenerator{err: entity.ErrGenerationFailed})

	_, err := svc.Generate(context.Background(), 1, "https://youtu.be/abc")
	if !errors.Is(err, entity.ErrGenerationFailed) {
		t.Fatalf("want ErrGenerationFailed, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("nothing must be persisted after generation failure")
	}
}

/* ─────────── 2. GetOwned ─────────── */

func TestService_GetOwned(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.posts[1] = &entity.BlogPost{ID: 1, UserID: 7, YoutubeTitle: "t"}

	svc := newService(repo, &fakeTitles{}, &fakeTranscriber{}, &fakeGenerator{})

	post, err := svc.GetOwned(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("GetOwned err=%v", err)
	}
	if post.ID != 1 {
		t.Errorf("want ID=1, got %d", post.ID)
	}
}

func TestService_GetOwned_Errors(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.posts[1] = &entity.BlogPost{ID: 1, UserID: 7}

	svc := newService(repo, &fakeTitles{}, &fakeTranscriber{}, &fakeGenerator{})

	tests := []struct {
		name    string
		userID  int64
		id      int64
		wantErr error
	}{
		{name: "invalid id", userID: 7, id: 0, wantErr: blog.ErrInvalidBlogID},
		{name: "not found", userID: 7, id: 99, wantErr: blog.ErrBlogNotFound},
		{name: "not owner", userID: 8, id: 1, wantErr: blog.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetOwned(context.Background(), tt.userID, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

/* ─────────── 3. List ─────────── */

func TestService_List(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.posts[1] = &entity.BlogPost{ID: 1, UserID: 7}
	repo.posts[2] = &entity.BlogPost{ID: 2, UserID: 8}

	svc := newService(repo, &fakeTitles{}, &fakeTranscriber{}, &fakeGenerator{})

	posts, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("want 1 post, got %d", len(posts))
	}
}

func TestService_Count(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.posts[1] = &entity.BlogPost{ID: 1, UserID: 7}
	repo.posts[2] = &entity.BlogPost{ID: 2, UserID: 7}
	repo.posts[3] = &entity.BlogPost{ID: 3, UserID: 8}

	svc := newService(repo, &fakeTitles{}, &fakeTranscriber{}, &fakeGenerator{})

	n, err := svc.Count(context.Background(), 7)
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 posts, got %d", n)
	}
}
