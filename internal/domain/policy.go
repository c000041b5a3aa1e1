package domain

import "time"

// PolicyDateFormat matches createDate values in the policy store
const PolicyDateFormat = "2006-01-02"

// PolicyToday returns today's date in the policy store format
func PolicyToday() string {
	return time.Now().Format(PolicyDateFormat)
}

// DefaultPolicyThumbnail is used when a policy is created without one
const DefaultPolicyThumbnail = "/img/main_bnr1.jpg"

// Policy is a single record of the policy store. The policy store is a JSON
// array, not a map, and uses camelCase field names.
type Policy struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Author       string          `json:"author"`
	CreateDate   string          `json:"createDate"`
	ViewCount    int             `json:"viewCount"`
	CommentCount int             `json:"commentCount"`
	LikeCount    int             `json:"likeCount"`
	CategoryCode string          `json:"categoryCode"`
	CategoryName string          `json:"categoryName"`
	Tags         []string        `json:"tags"`
	IsVisible    bool            `json:"isVisible"`
	Thumbnail    string          `json:"thumbnail"`
	Comments     []PolicyComment `json:"comments,omitempty"`
}

// PolicyComment is a comment on a policy. Policy comments are scoped to their
// policy and are removed physically, so there is no is_deleted flag.
type PolicyComment struct {
	ID          int    `json:"id"`
	PostID      int    `json:"post_id"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name"`
	CompanyName string `json:"company_name"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
}

// HasTag reports whether the policy's tags contain the given tag
func (p *Policy) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the policy
func (p *Policy) Clone() *Policy {
	cp := *p
	cp.Tags = make([]string, len(p.Tags))
	copy(cp.Tags, p.Tags)
	cp.Comments = make([]PolicyComment, len(p.Comments))
	copy(cp.Comments, p.Comments)
	return &cp
}
