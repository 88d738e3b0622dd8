package clientservice

type CreateClientServiceRequest struct {
	ClientID         string   `json:"client_id" binding:"required,uuid"`
	ServiceCategory  string   `json:"service_category" binding:"required"`
	ServiceType      string   `json:"service_type" binding:"required"`
	ServiceProvider  string   `json:"service_provider" binding:"required"`
	ServiceStartDate string   `json:"service_start_date" binding:"required,datetime=2006-01-02"`
	ServiceDays      []string `json:"service_days" binding:"required,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	ServiceHours     int      `json:"service_hours" binding:"required,min=1,max=24"`
	SegmentID        *int64   `json:"segment_id"`

	// AutoCreateCombination lets trusted flows register a missing taxonomy
	// combination on the fly instead of failing the assignment.
	AutoCreateCombination bool `json:"auto_create_combination"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Planned 'In Progress' Closed"`
}

type ClientServiceResponse struct {
	ID               string   `json:"id"`
	ClientID         string   `json:"client_id"`
	ServiceCategory  string   `json:"service_category"`
	ServiceType      string   `json:"service_type"`
	ServiceProvider  string   `json:"service_provider"`
	ServiceStartDate string   `json:"service_start_date"`
	ServiceDays      []string `json:"service_days"`
	ServiceHours     int      `json:"service_hours"`
	Status           string   `json:"status"`
	SegmentID        *int64   `json:"segment_id,omitempty"`
}
