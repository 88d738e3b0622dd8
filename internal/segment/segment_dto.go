package segment

type CreateSegmentRequest struct {
	CompanyID string `json:"company_id" binding:"required,uuid"`
	Name      string `json:"name" binding:"required,max=150"`
}

// Only the name is mutable; the owning company is fixed at creation.
type RenameSegmentRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type SegmentResponse struct {
	ID        int64  `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}
