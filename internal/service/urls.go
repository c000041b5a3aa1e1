package service

import (
	"strings"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
)

// AbsolutizeURL rewrites a local upload path ("/uploads/...") to an absolute
// URL using the requesting host's base; already-absolute references pass
// through untouched
func AbsolutizeURL(u, base string) string {
	if u == "" || !strings.HasPrefix(u, "/") {
		return u
	}
	return base + u
}

// ShapePost returns a response copy of the post with thumbnail and
// attachment URLs absolutized against the requesting host
func ShapePost(p *domain.Post, base string) *domain.Post {
	shaped := p.Clone()
	shaped.Thumbnail = AbsolutizeURL(shaped.Thumbnail, base)
	for i := range shaped.Attachments {
		a := &shaped.Attachments[i]
		a.URL = AbsolutizeURL(a.URL, base)
		if a.DownloadURL == "" {
			a.DownloadURL = a.URL
		} else {
			a.DownloadURL = AbsolutizeURL(a.DownloadURL, base)
		}
	}
	return shaped
}

// ShapePosts shapes a whole listing
func ShapePosts(posts []*domain.Post, base string) []*domain.Post {
	shaped := make([]*domain.Post, len(posts))
	for i, p := range posts {
		shaped[i] = ShapePost(p, base)
	}
	return shaped
}

// ShapePolicy absolutizes a policy's thumbnail
func ShapePolicy(p *domain.Policy, base string) *domain.Policy {
	shaped := p.Clone()
	shaped.Thumbnail = AbsolutizeURL(shaped.Thumbnail, base)
	return shaped
}

// ShapePolicies shapes a whole policy listing
func ShapePolicies(policies []*domain.Policy, base string) []*domain.Policy {
	shaped := make([]*domain.Policy, len(policies))
	for i, p := range policies {
		shaped[i] = ShapePolicy(p, base)
	}
	return shaped
}
