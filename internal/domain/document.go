package domain

import "strconv"

// BoardDocument is the whole board store: one JSON object keyed by the
// post id rendered as a string, exactly as persisted on disk.
type BoardDocument map[string]*Post

// Get looks up a post by numeric id
func (d BoardDocument) Get(id int) (*Post, bool) {
	p, ok := d[strconv.Itoa(id)]
	return p, ok
}

// Put stores a post under its id
func (d BoardDocument) Put(p *Post) {
	d[strconv.Itoa(p.ID)] = p
}

// Delete removes a post from the document
func (d BoardDocument) Delete(id int) {
	delete(d, strconv.Itoa(id))
}

// PolicyDocument is the whole policy store: a JSON array of policies.
type PolicyDocument []*Policy

// Find returns the policy with the given id, or nil
func (d PolicyDocument) Find(id int) *Policy {
	for _, p := range d {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// NextPostID assigns the id for a new post: max existing id + 1, starting at 1.
func NextPostID(doc BoardDocument) int {
	max := 0
	for _, p := range doc {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// NextAttachmentID assigns the id for a new attachment. Attachment ids are
// unique across the entire store, not per post.
func NextAttachmentID(doc BoardDocument) int {
	max := 0
	for _, p := range doc {
		for _, a := range p.Attachments {
			if a.ID > max {
				max = a.ID
			}
		}
	}
	return max + 1
}

// NextCommentID assigns the id for a new comment. Comment ids are unique
// across the entire store, not per post.
func NextCommentID(doc BoardDocument) int {
	max := 0
	for _, p := range doc {
		for _, c := range p.Comments {
			if c.ID > max {
				max = c.ID
			}
		}
	}
	return max + 1
}

// NextPolicyID assigns the id for a new policy
func NextPolicyID(doc PolicyDocument) int {
	max := 0
	for _, p := range doc {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// NextPolicyCommentID assigns the id for a new comment on the given policy.
// Policy comment ids are scoped to their policy.
func NextPolicyCommentID(p *Policy) int {
	max := 0
	for _, c := range p.Comments {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
