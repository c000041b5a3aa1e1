package dto

// UploadedFile is the response shape for a single stored upload
type UploadedFile struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	URL          string `json:"url"`
	DownloadURL  string `json:"downloadUrl"`
}
