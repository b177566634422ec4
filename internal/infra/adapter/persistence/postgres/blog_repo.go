package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/repository"
)

type BlogRepo struct {
	db *sql.DB
}

func NewBlogRepo(db *sql.DB) repository.BlogRepository {
	return &BlogRepo{db: db}
}

func (repo *BlogRepo) Create(ctx context.Context, post *entity.BlogPost) error {
	const query = `
INSERT INTO blog_posts
       (user_id, youtube_title, youtube_link, generated_content, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		post.UserID, post.YoutubeTitle, post.YoutubeLink,
		post.GeneratedContent, post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *BlogRepo) Get(ctx context.Context, id int64) (*entity.BlogPost, error) {
	const query = `
SELECT id, user_id, youtube_title, youtube_link, generated_content, created_at
FROM blog_posts
WHERE id = $1
LIMIT 1`
	var post entity.BlogPost
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.UserID, &post.YoutubeTitle, &post.YoutubeLink,
			&post.GeneratedContent, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &post, nil
}

func (repo *BlogRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.BlogPost, error) {
	const query = `
SELECT id, user_id, youtube_title, youtube_link, generated_content, created_at
FROM blog_posts
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*entity.BlogPost, 0, 20)
	for rows.Next() {
		var post entity.BlogPost
		if err := rows.Scan(&post.ID, &post.UserID, &post.YoutubeTitle,
			&post.YoutubeLink, &post.GeneratedContent, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByUser: Scan: %w", err)
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

func (repo *BlogRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM blog_posts WHERE user_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByUser: %w", err)
	}
	return count, nil
}
