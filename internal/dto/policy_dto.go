package dto

import (
	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
)

// CreatePolicyRequest carries the form fields of a policy creation
type CreatePolicyRequest struct {
	Title        string `form:"title"`
	Content      string `form:"content"`
	Author       string `form:"author"`
	CategoryCode string `form:"categoryCode"`
	CategoryName string `form:"categoryName"`
	// Tags is a JSON array string, e.g. `["운동","복지"]`
	Tags      string `form:"tags"`
	Thumbnail string `form:"thumbnail"`
}

// UpdatePolicyRequest carries a partial policy update; nil leaves a field
// alone
type UpdatePolicyRequest struct {
	Title        *string `form:"title"`
	Content      *string `form:"content"`
	CategoryCode *string `form:"categoryCode"`
	CategoryName *string `form:"categoryName"`
	Tags         *string `form:"tags"`
	Thumbnail    *string `form:"thumbnail"`
}

// PolicyFilters is the parsed policy list query
type PolicyFilters struct {
	CategoryCode string
	CategoryName string
	Tag          string
	Search       string
	// IsVisible defaults to "visible only" when nil
	IsVisible *bool
	Page      *int
	Limit     *int
}

// PolicyListResult mirrors PostListResult for the policy store
type PolicyListResult struct {
	Policies   []*domain.Policy
	Total      int
	Pagination *response.Pagination
}

// CreatePolicyCommentRequest is the JSON body of a policy comment creation
type CreatePolicyCommentRequest struct {
	PostID      int    `json:"post_id"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name"`
	CompanyName string `json:"company_name"`
	Content     string `json:"content"`
}
