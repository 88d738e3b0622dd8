package segment_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-careflow/internal/segment"
	segmenterrors "go-careflow/internal/segment/errors"
	segmentMock "go-careflow/internal/segment/mock"
	"go-careflow/internal/shared/contextutil"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type segmentDeps struct {
	service   segment.Service
	repo      *segmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupSegmentTest(t *testing.T) *segmentDeps {
	ctrl := gomock.NewController(t)
	repo := segmentMock.NewMockRepository(ctrl)
	rdb, redisMock := redismock.NewClientMock()

	return &segmentDeps{
		service:   segment.NewService(repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func TestSegmentService_ListByCompany(t *testing.T) {
	deps := setupSegmentTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	cacheKey := segment.GetSegmentsByCompanyKey(companyID.String())

	t.Run("cache hit skips the repository", func(t *testing.T) {
		cached := []segment.SegmentResponse{
			{ID: 1, CompanyID: companyID.String(), Name: "North"},
		}
		jsonResp, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(jsonResp))

		resp, err := deps.service.ListByCompany(ctx, companyID.String())
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "North", resp[0].Name)

		deps.repo.EXPECT().FindAllByCompany(gomock.Any(), gomock.Any()).Times(0)
	})

	t.Run("cache miss loads from the repository and fills the cache", func(t *testing.T) {
		deps.redismock.ExpectGet(cacheKey).RedisNil()

		segs := []segment.Segment{
			{ID: 1, CompanyID: companyID, Name: "North"},
			{ID: 2, CompanyID: companyID, Name: "South"},
		}
		deps.repo.EXPECT().
			FindAllByCompany(ctx, companyID).
			Return(segs, nil).
			Times(1)

		deps.redismock.ExpectSet(cacheKey, gomock.Any(), 30*time.Minute).SetVal("OK")

		resp, err := deps.service.ListByCompany(ctx, companyID.String())
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, int64(2), resp[1].ID)
	})

	t.Run("invalid company id", func(t *testing.T) {
		_, err := deps.service.ListByCompany(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, segmenterrors.ErrInvalidCompanyID)
	})
}

func TestSegmentService_Create(t *testing.T) {
	deps := setupSegmentTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	cacheKey := segment.GetSegmentsByCompanyKey(companyID.String())

	deps.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, seg *segment.Segment) error {
			seg.ID = 7
			return nil
		})
	deps.redismock.ExpectDel(cacheKey).SetVal(1)

	resp, err := deps.service.Create(ctx, segment.CreateSegmentRequest{
		CompanyID: companyID.String(),
		Name:      "East",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "East", resp.Name)
}

func TestSegmentService_Rename(t *testing.T) {
	deps := setupSegmentTest(t)
	ctx := context.Background()

	companyID := uuid.New()

	t.Run("renames and invalidates the cache", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&segment.Segment{ID: 7, CompanyID: companyID, Name: "East"}, nil)
		deps.repo.EXPECT().UpdateName(ctx, int64(7), "East Region").Return(nil)
		deps.redismock.ExpectDel(segment.GetSegmentsByCompanyKey(companyID.String())).SetVal(1)

		resp, err := deps.service.Rename(ctx, 7, segment.RenameSegmentRequest{Name: "East Region"})
		assert.NoError(t, err)
		assert.Equal(t, "East Region", resp.Name)
	})

	t.Run("missing segment", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, int64(99)).Return(nil, nil)

		_, err := deps.service.Rename(ctx, 99, segment.RenameSegmentRequest{Name: "X"})
		assert.ErrorIs(t, err, segmenterrors.ErrSegmentNotFound)
	})
}

func TestSegmentService_MySegments(t *testing.T) {
	deps := setupSegmentTest(t)

	t.Run("company-less caller gets an empty list, not an error", func(t *testing.T) {
		ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID: "u-root",
			Role:   contextutil.RoleAdmin,
		})

		resp, err := deps.service.MySegments(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("company member gets their segments", func(t *testing.T) {
		companyID := uuid.New()
		ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID:    "u-1",
			Role:      contextutil.RoleUser,
			CompanyID: companyID.String(),
		})

		cacheKey := segment.GetSegmentsByCompanyKey(companyID.String())
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAllByCompany(gomock.Any(), companyID).
			Return([]segment.Segment{{ID: 3, CompanyID: companyID, Name: "West"}}, nil)
		deps.redismock.ExpectSet(cacheKey, gomock.Any(), 30*time.Minute).SetVal("OK")

		resp, err := deps.service.MySegments(ctx)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "West", resp[0].Name)
	})
}

func TestSegmentService_SegmentRefByID(t *testing.T) {
	deps := setupSegmentTest(t)
	ctx := context.Background()

	companyID := uuid.New()

	t.Run("found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, int64(1)).
			Return(&segment.Segment{ID: 1, CompanyID: companyID}, nil)

		ref, found, err := deps.service.SegmentRefByID(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, companyID.String(), ref.CompanyID)
	})

	t.Run("absent", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, int64(404)).Return(nil, nil)

		_, found, err := deps.service.SegmentRefByID(ctx, 404)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}
