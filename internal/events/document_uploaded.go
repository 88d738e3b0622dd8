package events

import "time"

const DocumentUploadedTopic = "care.document.uploaded.v1"

type DocumentUploadedEvent struct {
	EventType  string    `json:"event_type"`
	DocumentID string    `json:"document_id"`
	ClientID   string    `json:"client_id"`
	Category   string    `json:"category"`
	FileName   string    `json:"file_name"`
	UploadedBy string    `json:"uploaded_by"`
	SegmentID  *int64    `json:"segment_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
