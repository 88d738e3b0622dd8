package masterdata

type CreateMasterDataRequest struct {
	ServiceCategory string `json:"serviceCategory" binding:"required,max=100"`
	ServiceType     string `json:"serviceType" binding:"required,max=100"`
	ServiceProvider string `json:"serviceProvider" binding:"required,max=150"`
	SegmentID       *int64 `json:"segmentId"`
	Active          *bool  `json:"active"`
}

type UpdateMasterDataRequest struct {
	ServiceCategory string `json:"serviceCategory"`
	ServiceType     string `json:"serviceType"`
	ServiceProvider string `json:"serviceProvider"`
	Active          *bool  `json:"active"`
}

type VerifyCombinationRequest struct {
	ServiceCategory string `form:"serviceCategory" binding:"required"`
	ServiceType     string `form:"serviceType" binding:"required"`
	ServiceProvider string `form:"serviceProvider" binding:"required"`
	SegmentID       *int64 `form:"segmentId"`
}

type MasterDataResponse struct {
	ID              int64  `json:"id"`
	ServiceCategory string `json:"serviceCategory"`
	ServiceType     string `json:"serviceType"`
	ServiceProvider string `json:"serviceProvider"`
	SegmentID       *int64 `json:"segmentId,omitempty"`
	Active          bool   `json:"active"`
}

// ConflictDetails is the 409 payload when an update is blocked by live
// client services; it names the exact combination and the impacted clients
// so the operator can triage before forcing a change.
type ConflictDetails struct {
	ServiceCategory     string               `json:"serviceCategory"`
	ServiceType         string               `json:"serviceType"`
	ServiceProvider     string               `json:"serviceProvider"`
	SegmentID           *int64               `json:"segmentId,omitempty"`
	ReferencingServices []ReferencingService `json:"referencingServices"`
}
