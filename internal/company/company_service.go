package company

import (
	"context"

	companyerrors "go-careflow/internal/company/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	List(ctx context.Context) ([]CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	comp := &Company{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Postcode:     req.Postcode,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		return nil, err
	}

	return mapToResponse(comp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, companyerrors.ErrCompanyNotFound
	}

	return mapToResponse(comp), nil
}

func (s *service) List(ctx context.Context) ([]CompanyResponse, error) {
	comps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]CompanyResponse, len(comps))
	for i := range comps {
		res[i] = *mapToResponse(&comps[i])
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, companyerrors.ErrCompanyNotFound
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.Phone != "" {
		comp.Phone = req.Phone
	}
	if req.AddressLine1 != "" {
		comp.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != "" {
		comp.AddressLine2 = req.AddressLine2
	}
	if req.City != "" {
		comp.City = req.City
	}
	if req.State != "" {
		comp.State = req.State
	}
	if req.Postcode != "" {
		comp.Postcode = req.Postcode
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	return mapToResponse(comp), nil
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		Postcode:     c.Postcode,
		IsActive:     c.IsActive,
	}
}
