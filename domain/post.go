package domain

import (
	"slices"
	"time"
)

// Post is a public outfit analysis shown in the community feed.
type Post struct {
	ID               string
	OwnerID          string
	ImageFilename    string
	StyleDescription string
	Score            float64
	Tags             []string
	Likes            []string // User IDs
	Dislikes         []string // User IDs
	Comments         []Comment
	CreatedAt        time.Time
}

// LikedBy reports whether userID is among the post's likes.
func (p Post) LikedBy(userID string) bool {
	return userID != "" && slices.Contains(p.Likes, userID)
}

// DislikedBy reports whether userID is among the post's dislikes.
func (p Post) DislikedBy(userID string) bool {
	return userID != "" && slices.Contains(p.Dislikes, userID)
}

// Comment is one entry of a post's comment thread.
type Comment struct {
	Author    string
	Text      string
	CreatedAt time.Time
}
