package domain

import "time"

// CommentTimeFormat matches comment created_at values in the board store
const CommentTimeFormat = "2006-01-02 15:04"

// CommentNow returns the current time in the comment timestamp format
func CommentNow() string {
	return time.Now().Format(CommentTimeFormat)
}

// Comment is a comment attached to a board post
type Comment struct {
	ID         int    `json:"id"`
	PostID     int    `json:"post_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	IsDeleted  bool   `json:"is_deleted"`
}
