package client

import (
	"context"
	"time"

	clienterrors "go-careflow/internal/client/errors"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	List(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	cl := &Client{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Postcode:     req.Postcode,
		SegmentID:    req.SegmentID,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return ClientResponse{}, clienterrors.ErrInvalidDateOfBirth
		}
		cl.DateOfBirth = &dob
	}

	if auth, ok := contextutil.GetAuth(ctx); ok {
		if uid, err := uuid.Parse(auth.UserID); err == nil {
			cl.CreatedBy = uid
		}
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
}

func (s *service) List(ctx context.Context) ([]ClientResponse, error) {
	auth, _ := contextutil.GetAuth(ctx)

	clients, err := s.repo.FindAll(ctx, auth.Segments)
	if err != nil {
		return nil, err
	}

	res := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		res[i] = mapToResponse(cl)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	cl, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrClientNotFound
	}

	// A client outside the caller's segments reads as absent, same as list.
	auth, _ := contextutil.GetAuth(ctx)
	if auth.SegmentsResolved && !auth.CanSeeSegment(cl.SegmentID) {
		return ClientResponse{}, clienterrors.ErrClientNotFound
	}

	return mapToResponse(*cl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	cl, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrClientNotFound
	}

	if req.FirstName != "" {
		cl.FirstName = req.FirstName
	}
	if req.LastName != "" {
		cl.LastName = req.LastName
	}
	if req.DateOfBirth != "" {
		dob, perr := time.Parse("2006-01-02", req.DateOfBirth)
		if perr != nil {
			return ClientResponse{}, clienterrors.ErrInvalidDateOfBirth
		}
		cl.DateOfBirth = &dob
	}
	if req.Email != "" {
		cl.Email = req.Email
	}
	if req.Phone != "" {
		cl.Phone = req.Phone
	}
	if req.AddressLine1 != "" {
		cl.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != "" {
		cl.AddressLine2 = req.AddressLine2
	}
	if req.City != "" {
		cl.City = req.City
	}
	if req.State != "" {
		cl.State = req.State
	}
	if req.Postcode != "" {
		cl.Postcode = req.Postcode
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return ClientResponse{}, err
	}

	return mapToResponse(*cl), nil
}

func mapToResponse(cl Client) ClientResponse {
	resp := ClientResponse{
		ID:           cl.ID.String(),
		FirstName:    cl.FirstName,
		LastName:     cl.LastName,
		Email:        cl.Email,
		Phone:        cl.Phone,
		AddressLine1: cl.AddressLine1,
		AddressLine2: cl.AddressLine2,
		City:         cl.City,
		State:        cl.State,
		Postcode:     cl.Postcode,
		SegmentID:    cl.SegmentID,
	}
	if cl.DateOfBirth != nil {
		resp.DateOfBirth = cl.DateOfBirth.Format("2006-01-02")
	}
	return resp
}
