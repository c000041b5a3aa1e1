package metrics

// RecordPostCreated records a post creation event
func (m *Metrics) RecordPostCreated() {
	m.safeExecute("RecordPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// RecordCommentAdded records a comment creation event
func (m *Metrics) RecordCommentAdded() {
	m.safeExecute("RecordCommentAdded", func() {
		m.CommentAddedTotal.Inc()
	})
}

// RecordLike records a like or unlike event
func (m *Metrics) RecordLike(direction string) {
	m.safeExecute("RecordLike", func() {
		m.LikesTotal.WithLabelValues(direction).Inc()
	})
}

// RecordPolicyCreated records a policy creation event
func (m *Metrics) RecordPolicyCreated() {
	m.safeExecute("RecordPolicyCreated", func() {
		m.PolicyCreatedTotal.Inc()
	})
}

// SetPostsTotal updates the non-deleted post count gauge
func (m *Metrics) SetPostsTotal(n int) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(n))
	})
}
