package document

type UploadDocumentRequest struct {
	ClientID  string `form:"client_id" binding:"required,uuid"`
	Category  string `form:"category" binding:"required"`
	SegmentID *int64 `form:"segment_id"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	Category    string `json:"category"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	SegmentID   *int64 `json:"segment_id,omitempty"`
	UploadedBy  string `json:"uploaded_by"`
}
