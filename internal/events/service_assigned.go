package events

import "time"

const ServiceAssignedTopic = "care.service.assigned.v1"

type ServiceAssignedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	ClientServiceID  string    `json:"client_service_id"`
	ClientID         string    `json:"client_id"`
	ServiceCategory  string    `json:"service_category"`
	ServiceType      string    `json:"service_type"`
	ServiceProvider  string    `json:"service_provider"`
	ServiceStartDate string    `json:"service_start_date"`
	SegmentID        *int64    `json:"segment_id,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
