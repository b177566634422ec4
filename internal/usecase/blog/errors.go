// Package blog provides use cases for generating and reading blog posts.
// It implements the link-to-article pipeline and the per-user read operations,
// delegating persistence to the blog repository.
package blog

import "errors"

// Sentinel errors for blog use case operations.
var (
	// ErrBlogNotFound indicates that the requested blog post was not found.
	ErrBlogNotFound = errors.New("blog post not found")

	// ErrInvalidBlogID indicates that the provided blog post ID is invalid.
	// Blog post IDs must be positive integers.
	ErrInvalidBlogID = errors.New("invalid blog post ID")

	// ErrNotOwner indicates that the blog post belongs to a different user.
	// Read access is restricted to the creating user.
	ErrNotOwner = errors.New("blog post not owned by user")

	// ErrEmptyLink indicates that no YouTube link was provided.
	ErrEmptyLink = errors.New("no YouTube link provided")
)
