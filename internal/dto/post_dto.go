package dto

import (
	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// CreatePostRequest carries the multipart form fields of a post creation.
// Binary parts (thumbnail, attachments files) are passed to the service
// separately by the handler.
type CreatePostRequest struct {
	Title        string `form:"title"`
	BoardType    string `form:"board_type"`
	Content      string `form:"content"`
	AuthorName   string `form:"author_name"`
	AuthorID     string `form:"author_id"`
	CompanyName  string `form:"company_name"`
	CompanyNo    int    `form:"company_no"`
	Tag          string `form:"tag"`
	CategoryCode string `form:"category_code"`
	CategoryName string `form:"category_name"`
	// Thumbnail may reference an external URL to fetch, or an existing
	// local path
	Thumbnail string `form:"thumbnail"`
	// Attachments is a JSON array of AttachmentInput
	Attachments string `form:"attachments"`
	IsPublic    *bool  `form:"is_public"`
}

// UpdatePostRequest carries a partial update. Field presence, not
// truthiness, decides whether a value overwrites: nil means "leave alone".
type UpdatePostRequest struct {
	Title        *string `form:"title"`
	BoardType    *string `form:"board_type"`
	Content      *string `form:"content"`
	Tag          *string `form:"tag"`
	CompanyName  *string `form:"company_name"`
	CompanyNo    *int    `form:"company_no"`
	CategoryCode *string `form:"category_code"`
	CategoryName *string `form:"category_name"`
	Thumbnail    *string `form:"thumbnail"`
	Attachments  *string `form:"attachments"`
}

// AttachmentInput is one entry of the serialized attachments form field
type AttachmentInput struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// PostFilters is the parsed list query. Pointer fields are tri-state:
// nil means the filter is not applied.
type PostFilters struct {
	BoardType    string
	Tag          string
	Search       string
	Category     string
	CategoryCode string
	CompanyNo    *int
	// IsPublic / IsDeleted are honored for privileged listings only
	IsPublic  *bool
	IsDeleted *bool
	SortBy    string
	Order     string
	Page      *int
	Limit     *int
}

// PostListResult is a filtered, sorted, optionally paginated listing.
// Pagination is nil when page/limit were absent from the request.
type PostListResult struct {
	Posts      []*domain.Post
	Total      int
	Pagination *response.Pagination
}
