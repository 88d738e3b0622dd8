package casenote

type CreateCaseNoteRequest struct {
	ClientID        string `json:"client_id" binding:"required,uuid"`
	ClientServiceID string `json:"client_service_id" binding:"omitempty,uuid"`
	NoteType        string `json:"note_type"`
	Content         string `json:"content" binding:"required"`
	SegmentID       *int64 `json:"segment_id"`
}

type CaseNoteResponse struct {
	ID              string `json:"id"`
	ClientID        string `json:"client_id"`
	ClientServiceID string `json:"client_service_id,omitempty"`
	NoteType        string `json:"note_type,omitempty"`
	Content         string `json:"content"`
	SegmentID       *int64 `json:"segment_id,omitempty"`
	CreatedBy       string `json:"created_by"`
	CreatedAt       string `json:"created_at"`
}
