package segment

import (
	"context"
	"encoding/json"
	"time"

	"go-careflow/internal/middleware"
	segmenterrors "go-careflow/internal/segment/errors"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const SegmentsByCompanyKeyPrefix = "segments:company:"

func GetSegmentsByCompanyKey(companyID string) string {
	return SegmentsByCompanyKeyPrefix + companyID
}

//go:generate mockgen -source=segment_service.go -destination=mock/segment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSegmentRequest) (SegmentResponse, error)
	Rename(ctx context.Context, id int64, req RenameSegmentRequest) (SegmentResponse, error)
	ListByCompany(ctx context.Context, companyID string) ([]SegmentResponse, error)

	// MySegments returns the caller's company segments for UI pickers. It
	// returns an empty list, never an error, for a company-less admin.
	MySegments(ctx context.Context) ([]SegmentResponse, error)

	// Directory lookups used by the authorization guard.
	SegmentRefByID(ctx context.Context, id int64) (middleware.SegmentRef, bool, error)
	SegmentIDsOfCompany(ctx context.Context, companyID string) ([]int64, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("segment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("segment.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateSegmentRequest) (SegmentResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return SegmentResponse{}, segmenterrors.ErrInvalidCompanyID
	}

	seg := &Segment{
		CompanyID: companyID,
		Name:      req.Name,
	}

	if err := s.repo.Create(ctx, seg); err != nil {
		return SegmentResponse{}, err
	}

	s.invalidateCompanyCache(ctx, req.CompanyID)

	return mapToResponse(*seg), nil
}

func (s *service) Rename(ctx context.Context, id int64, req RenameSegmentRequest) (SegmentResponse, error) {
	seg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SegmentResponse{}, err
	}
	if seg == nil {
		return SegmentResponse{}, segmenterrors.ErrSegmentNotFound
	}

	if err := s.repo.UpdateName(ctx, id, req.Name); err != nil {
		return SegmentResponse{}, err
	}
	seg.Name = req.Name

	s.invalidateCompanyCache(ctx, seg.CompanyID.String())

	return mapToResponse(*seg), nil
}

func (s *service) ListByCompany(ctx context.Context, companyID string) ([]SegmentResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, segmenterrors.ErrInvalidCompanyID
	}

	cacheKey := GetSegmentsByCompanyKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []SegmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps a cache-miss stampede down to one DB query.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		segs, err := s.repo.FindAllByCompany(ctx, cid)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(segs)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]SegmentResponse), nil
}

func (s *service) MySegments(ctx context.Context) ([]SegmentResponse, error) {
	auth, ok := contextutil.GetAuth(ctx)
	if !ok || auth.CompanyID == "" {
		// Keeps UI segment pickers simple: empty list, not an error.
		return []SegmentResponse{}, nil
	}

	resp, err := s.ListByCompany(ctx, auth.CompanyID)
	if err != nil {
		s.logger.Error("resolve my segments failed",
			zap.String("company_id", auth.CompanyID),
			zap.Error(err),
		)
		return []SegmentResponse{}, nil
	}
	if resp == nil {
		resp = []SegmentResponse{}
	}
	return resp, nil
}

func (s *service) SegmentRefByID(ctx context.Context, id int64) (middleware.SegmentRef, bool, error) {
	seg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return middleware.SegmentRef{}, false, err
	}
	if seg == nil {
		return middleware.SegmentRef{}, false, nil
	}
	return middleware.SegmentRef{
		ID:        seg.ID,
		CompanyID: seg.CompanyID.String(),
	}, true, nil
}

func (s *service) SegmentIDsOfCompany(ctx context.Context, companyID string) ([]int64, error) {
	resp, err := s.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(resp))
	for i, seg := range resp {
		ids[i] = seg.ID
	}
	return ids, nil
}

func (s *service) invalidateCompanyCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSegmentsByCompanyKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate segment cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(seg Segment) SegmentResponse {
	return SegmentResponse{
		ID:        seg.ID,
		CompanyID: seg.CompanyID.String(),
		Name:      seg.Name,
	}
}

func mapToListResponse(segs []Segment) []SegmentResponse {
	res := make([]SegmentResponse, len(segs))
	for i, seg := range segs {
		res[i] = mapToResponse(seg)
	}
	return res
}
