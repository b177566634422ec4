// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as BlogPost and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// BlogPost represents a generated blog article in the system.
// It is created once from a YouTube video transcript and never modified afterwards.
type BlogPost struct {
	ID               int64
	UserID           int64
	YoutubeTitle     string
	YoutubeLink      string
	GeneratedContent string
	CreatedAt        time.Time
}
