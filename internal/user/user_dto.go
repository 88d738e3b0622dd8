package user

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=100"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=admin user"`
	CompanyID string `json:"company_id"`
}

type UpdateUserRequest struct {
	Role      string `json:"role" binding:"omitempty,oneof=admin user"`
	CompanyID string `json:"company_id"`
	IsActive  *bool  `json:"is_active"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	IsActive  bool   `json:"is_active"`
}
