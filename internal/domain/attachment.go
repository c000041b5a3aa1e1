package domain

// Attachment is a file attached to a board post. URL points at the served
// asset; DownloadURL forces a download with the original filename.
type Attachment struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
	CreatedAt   string `json:"created_at"`
}
