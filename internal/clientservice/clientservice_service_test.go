package clientservice_test

import (
	"context"
	"database/sql"
	"testing"

	"go-careflow/internal/clientservice"
	clientserviceerrors "go-careflow/internal/clientservice/errors"
	clientserviceMock "go-careflow/internal/clientservice/mock"
	masterdataMock "go-careflow/internal/masterdata/mock"
	"go-careflow/internal/messaging/kafka"
	kafkaMock "go-careflow/internal/messaging/kafka/mock"
	"go-careflow/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type clientServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    clientservice.Service
	repo       *clientserviceMock.MockRepository
	masterData *masterdataMock.MockService
	outbox     *kafkaMock.MockOutboxRepository
}

func setupClientServiceTest(t *testing.T) *clientServiceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := clientserviceMock.NewMockRepository(ctrl)
	masterData := masterdataMock.NewMockService(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &clientServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    clientservice.NewService(db, repo, masterData, outbox),
		repo:       repo,
		masterData: masterData,
		outbox:     outbox,
	}
}

func validCreateRequest(clientID uuid.UUID) clientservice.CreateClientServiceRequest {
	segID := int64(1)
	return clientservice.CreateClientServiceRequest{
		ClientID:         clientID.String(),
		ServiceCategory:  "Community Support",
		ServiceType:      "Daily Living",
		ServiceProvider:  "Sunrise Care",
		ServiceStartDate: "2026-09-01",
		ServiceDays:      []string{"Monday", "Wednesday"},
		ServiceHours:     4,
		SegmentID:        &segID,
	}
}

func TestClientServiceService_Create(t *testing.T) {
	ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID: uuid.NewString(),
		Role:   contextutil.RoleUser,
	})

	clientID := uuid.New()

	t.Run("missing combination rejects before any write", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, clientserviceerrors.ErrCombinationNotFound)

		// No transaction was opened, nothing was persisted.
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deactivated combination is rejected", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		// The row exists but was switched off; assignments must not target it.
		req := validCreateRequest(clientID)
		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, clientserviceerrors.ErrCombinationNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("auto-create does not resurrect a deactivated combination", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		req.AutoCreateCombination = true

		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)
		deps.masterData.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(true, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, clientserviceerrors.ErrCombinationNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing combination is auto-created when requested", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		req.AutoCreateCombination = true

		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)
		deps.masterData.EXPECT().
			Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(false, nil)
		deps.masterData.EXPECT().
			EnsureCombination(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(nil)
		deps.repo.EXPECT().ClientExists(ctx, clientID).Return(true, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, clientservice.StatusPlanned, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(true, nil)
		deps.repo.EXPECT().ClientExists(ctx, clientID).Return(false, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, clientserviceerrors.ErrClientNotFound)
	})

	t.Run("valid assignment persists row and outbox event in one transaction", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(true, nil)
		deps.repo.EXPECT().ClientExists(ctx, clientID).Return(true, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "care.service.assigned.v1", event.Topic)
				assert.Equal(t, "service_assigned", event.EventType)
				assert.Equal(t, "client_service", event.AggregateType)
				assert.Equal(t, kafka.OutboxStatusPending, event.Status)
				assert.NotEmpty(t, event.Payload)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, clientservice.StatusPlanned, resp.Status)
		assert.Equal(t, "2026-09-01", resp.ServiceStartDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls the assignment back", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest(clientID)
		deps.masterData.EXPECT().
			ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID).
			Return(true, nil)
		deps.repo.EXPECT().ClientExists(ctx, clientID).Return(true, nil)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(assert.AnError)

		_, err := deps.service.Create(ctx, req)
		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientServiceService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	existing := &clientservice.ClientService{
		ID:     id,
		Status: clientservice.StatusPlanned,
	}

	t.Run("valid transition", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(ctx, id).Return(existing, nil)
		deps.repo.EXPECT().UpdateStatus(ctx, id, clientservice.StatusInProgress).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, id.String(), clientservice.UpdateStatusRequest{
			Status: clientservice.StatusInProgress,
		})
		assert.NoError(t, err)
		assert.Equal(t, clientservice.StatusInProgress, resp.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, id.String(), clientservice.UpdateStatusRequest{
			Status: "Archived",
		})
		assert.ErrorIs(t, err, clientserviceerrors.ErrInvalidStatus)
	})

	t.Run("missing assignment", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, nil)

		_, err := deps.service.UpdateStatus(ctx, id.String(), clientservice.UpdateStatusRequest{
			Status: clientservice.StatusClosed,
		})
		assert.ErrorIs(t, err, clientserviceerrors.ErrClientServiceNotFound)
	})
}

func TestClientServiceService_GetByID(t *testing.T) {
	id := uuid.New()
	foreignSeg := int64(9)
	ownSeg := int64(1)

	scopedCtx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID:           uuid.NewString(),
		Role:             contextutil.RoleUser,
		CompanyID:        uuid.NewString(),
		Segments:         []int64{1, 2},
		SegmentsResolved: true,
	})

	t.Run("assignment in a visible segment is returned", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(scopedCtx, id).Return(&clientservice.ClientService{
			ID:        id,
			ClientID:  uuid.New(),
			SegmentID: &ownSeg,
			Status:    clientservice.StatusPlanned,
		}, nil)

		resp, err := deps.service.GetByID(scopedCtx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("assignment in an invisible segment reads as not found", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(scopedCtx, id).Return(&clientservice.ClientService{
			ID:        id,
			ClientID:  uuid.New(),
			SegmentID: &foreignSeg,
			Status:    clientservice.StatusPlanned,
		}, nil)

		_, err := deps.service.GetByID(scopedCtx, id.String())
		assert.ErrorIs(t, err, clientserviceerrors.ErrClientServiceNotFound)
	})

	t.Run("global admin sees every segment", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		adminCtx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID:           uuid.NewString(),
			Role:             contextutil.RoleAdmin,
			SegmentsResolved: true,
		})

		deps.repo.EXPECT().FindByID(adminCtx, id).Return(&clientservice.ClientService{
			ID:        id,
			ClientID:  uuid.New(),
			SegmentID: &foreignSeg,
			Status:    clientservice.StatusPlanned,
		}, nil)

		_, err := deps.service.GetByID(adminCtx, id.String())
		assert.NoError(t, err)
	})
}

func TestClientServiceService_List(t *testing.T) {
	deps := setupClientServiceTest(t)
	defer deps.db.Close()

	segID := int64(1)
	ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID:           uuid.NewString(),
		Role:             contextutil.RoleUser,
		CompanyID:        uuid.NewString(),
		Segments:         []int64{1},
		SegmentsResolved: true,
	})

	deps.repo.EXPECT().
		FindAll(ctx, []int64{1}).
		Return([]clientservice.ClientService{
			{ID: uuid.New(), ClientID: uuid.New(), SegmentID: &segID, Status: clientservice.StatusPlanned},
		}, nil)

	resp, err := deps.service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}
