package user

import (
	"context"

	usererrors "go-careflow/internal/user/errors"

	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, companyID string) ([]UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	companyID, err := parseCompanyID(req.Role, req.CompanyID)
	if err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		Username:  req.Username,
		Password:  string(hashed),
		Role:      req.Role,
		CompanyID: companyID,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return UserResponse{}, usererrors.ErrUsernameTaken
	}

	return mapToResponse(u), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	return mapToResponse(u), nil
}

func (s *service) List(ctx context.Context, companyID string) ([]UserResponse, error) {
	var (
		users []User
		err   error
	)

	if companyID == "" {
		users, err = s.repo.FindAll(ctx)
	} else {
		cid, perr := uuid.Parse(companyID)
		if perr != nil {
			return nil, usererrors.ErrInvalidUserID
		}
		users, err = s.repo.FindAllByCompany(ctx, cid)
	}
	if err != nil {
		return nil, err
	}

	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = mapToResponse(&users[i])
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	if req.Role != "" {
		u.Role = req.Role
	}
	if req.CompanyID != "" {
		cid, perr := uuid.Parse(req.CompanyID)
		if perr != nil {
			return UserResponse{}, usererrors.ErrInvalidUserID
		}
		u.CompanyID = &cid
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	// A regular user can never end up without a company.
	if u.Role != contextutil.RoleAdmin && u.CompanyID == nil {
		return UserResponse{}, usererrors.ErrCompanyRequired
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}

	return mapToResponse(u), nil
}

func parseCompanyID(role, raw string) (*uuid.UUID, error) {
	if raw == "" {
		// Only an admin may be created without a company (global scope).
		if role != contextutil.RoleAdmin {
			return nil, usererrors.ErrCompanyRequired
		}
		return nil, nil
	}
	cid, err := uuid.Parse(raw)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	return &cid, nil
}

func mapToResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
	if u.CompanyID != nil {
		resp.CompanyID = u.CompanyID.String()
	}
	return resp
}
