package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	documenterrors "go-careflow/internal/document/errors"
	"go-careflow/internal/events"
	"go-careflow/internal/messaging/kafka"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxUploadBytes = 25 << 20

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, req UploadDocumentRequest, fileName, contentType string, size int64, src io.Reader) (DocumentResponse, error)
	ListByClient(ctx context.Context, clientID string) ([]DocumentResponse, error)
	GetByID(ctx context.Context, id string) (DocumentResponse, error)
	// OpenContent returns the stored bytes plus the metadata needed to
	// serve them. The caller owns closing the reader.
	OpenContent(ctx context.Context, id string) (DocumentResponse, io.ReadCloser, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	storage Storage
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	storage Storage,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		storage: storage,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Upload(
	ctx context.Context,
	req UploadDocumentRequest,
	fileName, contentType string,
	size int64,
	src io.Reader,
) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if size > MaxUploadBytes {
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	// The target segment rides in the multipart form, which the route guard
	// does not parse. Ownership is enforced here, before any bytes land.
	auth, _ := contextutil.GetAuth(ctx)
	if auth.SegmentsResolved && !auth.CanSeeSegment(req.SegmentID) {
		s.logger.Warn("upload into foreign segment rejected",
			zap.String("request_id", rid),
			zap.Int64p("segment_id", req.SegmentID),
		)
		return DocumentResponse{}, documenterrors.ErrSegmentForbidden
	}

	doc := &Document{
		ID:          uuid.New(),
		ClientID:    clientID,
		Category:    req.Category,
		FileName:    fileName,
		ContentType: contentType,
		SegmentID:   req.SegmentID,
		UploadedBy:  callerID(ctx),
	}
	doc.StoragePath = fmt.Sprintf("%s/%s", clientID, doc.ID)

	written, err := s.storage.Save(doc.StoragePath, io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		s.logger.Error("store document bytes failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, documenterrors.ErrStorageFailure
	}
	doc.SizeBytes = written

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upload document begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, doc); err != nil {
		s.logger.Error("upload document persist failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}

	if s.outbox != nil {
		event := events.DocumentUploadedEvent{
			EventType:  "document_uploaded",
			DocumentID: doc.ID.String(),
			ClientID:   doc.ClientID.String(),
			Category:   doc.Category,
			FileName:   doc.FileName,
			UploadedBy: doc.UploadedBy.String(),
			SegmentID:  doc.SegmentID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return DocumentResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "document",
			AggregateID:   doc.ID.String(),
			EventType:     event.EventType,
			Topic:         events.DocumentUploadedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("upload document outbox persist failed",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err),
			)
			return DocumentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("document uploaded",
		zap.String("request_id", rid),
		zap.String("document_id", doc.ID.String()),
		zap.String("client_id", doc.ClientID.String()),
		zap.Int64("size_bytes", doc.SizeBytes),
	)

	return mapToResponse(*doc), nil
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]DocumentResponse, error) {
	cid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, documenterrors.ErrDocumentNotFound
	}

	auth, _ := contextutil.GetAuth(ctx)

	docs, err := s.repo.FindAllByClient(ctx, cid, auth.Segments)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		return nil, err
	}

	res := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		res[i] = mapToResponse(doc)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentResponse, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*doc), nil
}

func (s *service) OpenContent(ctx context.Context, id string) (DocumentResponse, io.ReadCloser, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return DocumentResponse{}, nil, err
	}

	rc, err := s.storage.Open(doc.StoragePath)
	if err != nil {
		s.logger.Error("open document bytes failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return DocumentResponse{}, nil, documenterrors.ErrStorageFailure
	}

	return mapToResponse(*doc), rc, nil
}

func (s *service) find(ctx context.Context, id string) (*Document, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}

	doc, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, documenterrors.ErrDocumentNotFound
	}

	auth, _ := contextutil.GetAuth(ctx)
	if auth.SegmentsResolved && !auth.CanSeeSegment(doc.SegmentID) {
		return nil, documenterrors.ErrDocumentNotFound
	}

	return doc, nil
}

func callerID(ctx context.Context) uuid.UUID {
	if auth, ok := contextutil.GetAuth(ctx); ok {
		if uid, err := uuid.Parse(auth.UserID); err == nil {
			return uid
		}
	}
	return uuid.Nil
}

func mapToResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID.String(),
		ClientID:    doc.ClientID.String(),
		Category:    doc.Category,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		SegmentID:   doc.SegmentID,
		UploadedBy:  doc.UploadedBy.String(),
	}
}
