package dto

// CreateCommentRequest is the JSON body of a comment creation
type CreateCommentRequest struct {
	PostID     int    `json:"post_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// UpdateCommentRequest replaces a comment's content only
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// SetCommentDeletedRequest toggles a comment's soft-delete flag.
// Pointer so a missing value can be rejected with a 400.
type SetCommentDeletedRequest struct {
	IsDeleted *bool `json:"is_deleted"`
}
