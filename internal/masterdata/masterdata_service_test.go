package masterdata_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-careflow/internal/masterdata"
	masterdataerrors "go-careflow/internal/masterdata/errors"
	masterdataMock "go-careflow/internal/masterdata/mock"
	"go-careflow/internal/shared/apperror"
	"go-careflow/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type masterDataDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service masterdata.Service
	repo    *masterdataMock.MockRepository
}

func setupMasterDataTest(t *testing.T) *masterDataDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := masterdataMock.NewMockRepository(ctrl)

	return &masterDataDeps{
		db:      db,
		sqlMock: sqlMock,
		service: masterdata.NewService(db, repo),
		repo:    repo,
	}
}

func segPtr(id int64) *int64 { return &id }

func TestMasterDataService_Create(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	req := masterdata.CreateMasterDataRequest{
		ServiceCategory: "Community Support",
		ServiceType:     "Daily Living",
		ServiceProvider: "Sunrise Care",
		SegmentID:       segPtr(1),
	}

	t.Run("new combination is created", func(t *testing.T) {
		deps.repo.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "Community Support", resp.ServiceCategory)
		assert.True(t, resp.Active)
	})

	t.Run("duplicate combination is rejected", func(t *testing.T) {
		deps.repo.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(true, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, masterdataerrors.ErrCombinationExists)
	})
}

func TestMasterDataService_Update_ReferencedCombinationConflicts(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	current := &masterdata.MasterData{
		ID:              10,
		ServiceCategory: "Community Support",
		ServiceType:     "Daily Living",
		ServiceProvider: "Sunrise Care",
		SegmentID:       segPtr(1),
		Active:          true,
	}

	refs := []masterdata.ReferencingService{
		{ClientName: "Ada Lovelace", Status: "In Progress", ServiceStartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, int64(10)).Return(current, nil)
	deps.repo.EXPECT().
		FindReferencingServices(ctx, "Community Support", "Daily Living", "Sunrise Care", segPtr(1)).
		Return(refs, nil)

	_, err := deps.service.Update(ctx, 10, masterdata.UpdateMasterDataRequest{
		ServiceProvider: "Other Provider",
	})

	assert.ErrorIs(t, err, masterdataerrors.ErrCombinationInUse)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(masterdata.ConflictDetails)
	assert.True(t, ok)
	assert.Len(t, details.ReferencingServices, 1)
	assert.Equal(t, "Ada Lovelace", details.ReferencingServices[0].ClientName)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestMasterDataService_Update_UnreferencedCombinationApplies(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	current := &masterdata.MasterData{
		ID:              11,
		ServiceCategory: "Community Support",
		ServiceType:     "Transport",
		ServiceProvider: "Sunrise Care",
		Active:          true,
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, int64(11)).Return(current, nil)
	deps.repo.EXPECT().
		FindReferencingServices(ctx, "Community Support", "Transport", "Sunrise Care", nil).
		Return(nil, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.Update(ctx, 11, masterdata.UpdateMasterDataRequest{
		ServiceProvider: "Harbour Care",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Harbour Care", resp.ServiceProvider)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestMasterDataService_Update_NotFound(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, int64(404)).Return(nil, nil)

	_, err := deps.service.Update(ctx, 404, masterdata.UpdateMasterDataRequest{})
	assert.ErrorIs(t, err, masterdataerrors.ErrMasterDataNotFound)
}

func TestMasterDataService_Delete(t *testing.T) {
	ctx := context.Background()

	current := &masterdata.MasterData{
		ID:              12,
		ServiceCategory: "Community Support",
		ServiceType:     "Daily Living",
		ServiceProvider: "Sunrise Care",
		SegmentID:       segPtr(1),
		Active:          true,
	}

	t.Run("referenced combination conflicts", func(t *testing.T) {
		deps := setupMasterDataTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(12)).Return(current, nil)
		deps.repo.EXPECT().
			FindReferencingServices(ctx, "Community Support", "Daily Living", "Sunrise Care", segPtr(1)).
			Return([]masterdata.ReferencingService{{ClientName: "Ada Lovelace", Status: "Planned"}}, nil)

		err := deps.service.Delete(ctx, 12)
		assert.ErrorIs(t, err, masterdataerrors.ErrCombinationStillReferenced)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		_, ok := appErr.Details.(masterdata.ConflictDetails)
		assert.True(t, ok)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unreferenced combination is removed", func(t *testing.T) {
		deps := setupMasterDataTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(12)).Return(current, nil)
		deps.repo.EXPECT().
			FindReferencingServices(ctx, "Community Support", "Daily Living", "Sunrise Care", segPtr(1)).
			Return(nil, nil)
		deps.repo.EXPECT().Delete(ctx, int64(12)).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, 12))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing entry", func(t *testing.T) {
		deps := setupMasterDataTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(404)).Return(nil, nil)

		assert.ErrorIs(t, deps.service.Delete(ctx, 404), masterdataerrors.ErrMasterDataNotFound)
	})
}

func TestMasterDataService_Verify(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	req := masterdata.VerifyCombinationRequest{
		ServiceCategory: "Community Support",
		ServiceType:     "Daily Living",
		ServiceProvider: "Sunrise Care",
	}

	t.Run("present", func(t *testing.T) {
		deps.repo.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, nil).
			Return(true, nil)

		assert.NoError(t, deps.service.Verify(ctx, req))
	})

	t.Run("segment scope is part of the identity", func(t *testing.T) {
		// The unscoped tuple exists, the segment-scoped one does not; the
		// scoped lookup must not fall back to the unscoped row.
		scoped := req
		scoped.SegmentID = segPtr(5)

		deps.repo.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, segPtr(5)).
			Return(false, nil)

		err := deps.service.Verify(ctx, scoped)
		assert.ErrorIs(t, err, masterdataerrors.ErrCombinationNotFound)
	})

	t.Run("absent yields guidance 404", func(t *testing.T) {
		deps.repo.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, nil).
			Return(false, nil)

		err := deps.service.Verify(ctx, req)
		assert.ErrorIs(t, err, masterdataerrors.ErrCombinationNotFound)
	})
}

func TestMasterDataService_EnsureCombination(t *testing.T) {
	deps := setupMasterDataTest(t)
	defer deps.db.Close()

	ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID: "3b5a4f80-65aa-42ec-a945-5fd21dec0538",
	})

	t.Run("existing combination is a no-op", func(t *testing.T) {
		deps.repo.EXPECT().
			Exists(ctx, "Cat", "Type", "Prov", nil).
			Return(true, nil)

		assert.NoError(t, deps.service.EnsureCombination(ctx, "Cat", "Type", "Prov", nil))
	})

	t.Run("missing combination is created", func(t *testing.T) {
		deps.repo.EXPECT().Exists(ctx, "Cat", "Type", "Prov", nil).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		assert.NoError(t, deps.service.EnsureCombination(ctx, "Cat", "Type", "Prov", nil))
	})

	t.Run("losing a concurrent insert race is non-fatal", func(t *testing.T) {
		deps.repo.EXPECT().Exists(ctx, "Cat", "Type", "Prov", nil).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_master_data_combination",
		})

		assert.NoError(t, deps.service.EnsureCombination(ctx, "Cat", "Type", "Prov", nil))
	})

	t.Run("other storage errors propagate", func(t *testing.T) {
		deps.repo.EXPECT().Exists(ctx, "Cat", "Type", "Prov", nil).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("connection reset"))

		assert.Error(t, deps.service.EnsureCombination(ctx, "Cat", "Type", "Prov", nil))
	})
}
