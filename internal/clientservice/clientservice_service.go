package clientservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	clientserviceerrors "go-careflow/internal/clientservice/errors"
	"go-careflow/internal/events"
	"go-careflow/internal/masterdata"
	"go-careflow/internal/messaging/kafka"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=clientservice_service.go -destination=mock/clientservice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientServiceRequest) (ClientServiceResponse, error)
	List(ctx context.Context) ([]ClientServiceResponse, error)
	ListByClient(ctx context.Context, clientID string) ([]ClientServiceResponse, error)
	GetByID(ctx context.Context, id string) (ClientServiceResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (ClientServiceResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	masterData masterdata.Service
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	masterData masterdata.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("clientservice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("clientservice.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		masterData: masterData,
		outbox:     outboxRepo,
		logger:     l,
	}
}

// Create rejects the assignment before any row is written when the
// taxonomy combination is absent for the requested segment scope.
func (s *service) Create(ctx context.Context, req CreateClientServiceRequest) (ClientServiceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create client service requested",
		zap.String("request_id", rid),
		zap.String("client_id", req.ClientID),
		zap.String("service_category", req.ServiceCategory),
		zap.String("service_type", req.ServiceType),
	)

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrClientNotFound
	}

	// Assignments may only target combinations that exist and are active.
	active, err := s.masterData.ExistsActive(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID)
	if err != nil {
		s.logger.Error("master data existence check failed", zap.String("request_id", rid), zap.Error(err))
		return ClientServiceResponse{}, err
	}
	if !active {
		if !req.AutoCreateCombination {
			s.logger.Warn("create client service combination missing or inactive",
				zap.String("service_category", req.ServiceCategory),
				zap.String("service_type", req.ServiceType),
				zap.String("service_provider", req.ServiceProvider),
			)
			return ClientServiceResponse{}, clientserviceerrors.ErrCombinationNotFound
		}

		// Auto-create covers missing combinations only; a deactivated entry
		// was switched off deliberately and stays off.
		present, err := s.masterData.Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID)
		if err != nil {
			return ClientServiceResponse{}, err
		}
		if present {
			return ClientServiceResponse{}, clientserviceerrors.ErrCombinationNotFound
		}

		if err := s.masterData.EnsureCombination(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID); err != nil {
			s.logger.Error("auto-create combination failed", zap.String("request_id", rid), zap.Error(err))
			return ClientServiceResponse{}, err
		}
		s.logger.Info("combination auto-created for assignment",
			zap.String("request_id", rid),
			zap.String("service_category", req.ServiceCategory),
			zap.String("service_type", req.ServiceType),
			zap.String("service_provider", req.ServiceProvider),
		)
	}

	found, err := s.repo.ClientExists(ctx, clientID)
	if err != nil {
		return ClientServiceResponse{}, err
	}
	if !found {
		return ClientServiceResponse{}, clientserviceerrors.ErrClientNotFound
	}

	startDate, err := time.Parse("2006-01-02", req.ServiceStartDate)
	if err != nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrInvalidStartDate
	}

	cs := &ClientService{
		ID:               uuid.New(),
		ClientID:         clientID,
		ServiceCategory:  req.ServiceCategory,
		ServiceType:      req.ServiceType,
		ServiceProvider:  req.ServiceProvider,
		ServiceStartDate: startDate,
		ServiceDays:      req.ServiceDays,
		ServiceHours:     req.ServiceHours,
		Status:           StatusPlanned,
		SegmentID:        req.SegmentID,
		CreatedBy:        callerID(ctx),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create client service begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ClientServiceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, cs); err != nil {
		s.logger.Error("create client service persist failed", zap.String("request_id", rid), zap.Error(err))
		return ClientServiceResponse{}, err
	}

	event := events.ServiceAssignedEvent{
		EventType:        "service_assigned",
		RequestID:        rid,
		ClientServiceID:  cs.ID.String(),
		ClientID:         cs.ClientID.String(),
		ServiceCategory:  cs.ServiceCategory,
		ServiceType:      cs.ServiceType,
		ServiceProvider:  cs.ServiceProvider,
		ServiceStartDate: req.ServiceStartDate,
		SegmentID:        cs.SegmentID,
		OccurredAt:       time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return ClientServiceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "client_service",
			AggregateID:   cs.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ServiceAssignedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create client service outbox persist failed",
				zap.String("client_service_id", cs.ID.String()),
				zap.Error(err),
			)
			return ClientServiceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return ClientServiceResponse{}, err
	}

	s.logger.Info("create client service success",
		zap.String("request_id", rid),
		zap.String("client_service_id", cs.ID.String()),
	)

	return mapToResponse(*cs), nil
}

func (s *service) List(ctx context.Context) ([]ClientServiceResponse, error) {
	auth, _ := contextutil.GetAuth(ctx)

	rows, err := s.repo.FindAll(ctx, auth.Segments)
	if err != nil {
		s.logger.Error("list client services failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(rows), nil
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]ClientServiceResponse, error) {
	cid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, clientserviceerrors.ErrClientNotFound
	}

	auth, _ := contextutil.GetAuth(ctx)

	rows, err := s.repo.FindAllByClient(ctx, cid, auth.Segments)
	if err != nil {
		s.logger.Error("list client services by client failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClientServiceResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrInvalidClientServiceID
	}

	cs, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return ClientServiceResponse{}, err
	}
	if cs == nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrClientServiceNotFound
	}

	// A row outside the caller's segments reads as absent, same as list.
	auth, _ := contextutil.GetAuth(ctx)
	if auth.SegmentsResolved && !auth.CanSeeSegment(cs.SegmentID) {
		return ClientServiceResponse{}, clientserviceerrors.ErrClientServiceNotFound
	}

	return mapToResponse(*cs), nil
}

// UpdateStatus is the only mutation supported after creation. Schedule
// and taxonomy fields are immutable on an assignment.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (ClientServiceResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrInvalidClientServiceID
	}

	if !ValidStatus(req.Status) {
		return ClientServiceResponse{}, clientserviceerrors.ErrInvalidStatus
	}

	cs, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return ClientServiceResponse{}, err
	}
	if cs == nil {
		return ClientServiceResponse{}, clientserviceerrors.ErrClientServiceNotFound
	}

	if err := s.repo.UpdateStatus(ctx, uid, req.Status); err != nil {
		s.logger.Error("update client service status failed",
			zap.String("client_service_id", id),
			zap.Error(err),
		)
		return ClientServiceResponse{}, err
	}

	s.logger.Info("client service status updated",
		zap.String("client_service_id", id),
		zap.String("status", req.Status),
	)

	cs.Status = req.Status
	return mapToResponse(*cs), nil
}

func callerID(ctx context.Context) uuid.UUID {
	if auth, ok := contextutil.GetAuth(ctx); ok {
		if uid, err := uuid.Parse(auth.UserID); err == nil {
			return uid
		}
	}
	return uuid.Nil
}

func mapToResponse(cs ClientService) ClientServiceResponse {
	return ClientServiceResponse{
		ID:               cs.ID.String(),
		ClientID:         cs.ClientID.String(),
		ServiceCategory:  cs.ServiceCategory,
		ServiceType:      cs.ServiceType,
		ServiceProvider:  cs.ServiceProvider,
		ServiceStartDate: cs.ServiceStartDate.Format("2006-01-02"),
		ServiceDays:      cs.ServiceDays,
		ServiceHours:     cs.ServiceHours,
		Status:           cs.Status,
		SegmentID:        cs.SegmentID,
	}
}

func mapToListResponse(rows []ClientService) []ClientServiceResponse {
	res := make([]ClientServiceResponse, len(rows))
	for i, cs := range rows {
		res[i] = mapToResponse(cs)
	}
	return res
}
