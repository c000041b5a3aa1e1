package domain

import (
	"encoding/json"
	"time"
)

// Board type discriminators. Posts of every board share one store and are
// partitioned by board_type.
const (
	BoardTypeHealthBoard    = "health-board"
	BoardTypeHealthPolicy   = "health-policy"
	BoardTypeHealthPrograms = "health-programs"
)

// TimeFormat matches the timestamps already persisted in the board store
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Now returns the current UTC time in the store's timestamp format
func Now() string {
	return time.Now().UTC().Format(TimeFormat)
}

// Post is a single board record as persisted in the board store
type Post struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	AuthorName   string       `json:"author_name"`
	AuthorID     string       `json:"author_id"`
	CompanyName  string       `json:"company_name"`
	CompanyNo    int          `json:"company_no"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	ViewCount    int          `json:"view_count"`
	CommentCount int          `json:"comment_count"`
	LikeCount    int          `json:"like_count"`
	BoardType    string       `json:"board_type"`
	// Tag holds a JSON-serialized string array, e.g. `["복지","건강제도"]`
	Tag          string       `json:"tag"`
	CategoryCode string       `json:"category_code,omitempty"`
	CategoryName string       `json:"category_name,omitempty"`
	Thumbnail    string       `json:"thumbnail"`
	Attachments  []Attachment `json:"attachments"`
	Comments     []Comment    `json:"comments"`
	IsPublic     bool         `json:"is_public"`
	IsDeleted    bool         `json:"is_deleted"`
	// Step is the health-programs read flag: 0 unread, 1 read
	Step int `json:"step,omitempty"`
}

// Tags parses the serialized tag array. A malformed value yields an empty list.
func (p *Post) Tags() []string {
	var tags []string
	if err := json.Unmarshal([]byte(p.Tag), &tags); err != nil {
		return nil
	}
	return tags
}

// HasTag reports whether the post's tag array contains the given tag
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// RecountComments sets comment_count to the number of non-deleted comments.
// comment_count is derived and must never be authored directly.
func (p *Post) RecountComments() {
	count := 0
	for _, c := range p.Comments {
		if !c.IsDeleted {
			count++
		}
	}
	p.CommentCount = count
}

// Clone returns a deep copy of the post. Handlers mutate copies when shaping
// responses so the persisted record is never touched.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Attachments = make([]Attachment, len(p.Attachments))
	copy(cp.Attachments, p.Attachments)
	cp.Comments = make([]Comment, len(p.Comments))
	copy(cp.Comments, p.Comments)
	return &cp
}
