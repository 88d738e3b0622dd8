package casenote

import (
	"context"
	"time"

	casenoteerrors "go-careflow/internal/casenote/errors"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=casenote_service.go -destination=mock/casenote_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCaseNoteRequest) (CaseNoteResponse, error)
	ListByClient(ctx context.Context, clientID string) ([]CaseNoteResponse, error)
	// Delete removes a note. Only the author or an administrator may
	// delete; everyone else gets a 403.
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("casenote.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("casenote.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCaseNoteRequest) (CaseNoteResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return CaseNoteResponse{}, casenoteerrors.ErrInvalidCaseNoteID
	}

	note := &CaseNote{
		ID:        uuid.New(),
		ClientID:  clientID,
		NoteType:  req.NoteType,
		Content:   req.Content,
		SegmentID: req.SegmentID,
	}

	if req.ClientServiceID != "" {
		csID, perr := uuid.Parse(req.ClientServiceID)
		if perr != nil {
			return CaseNoteResponse{}, casenoteerrors.ErrInvalidCaseNoteID
		}
		note.ClientServiceID = &csID
	}

	if auth, ok := contextutil.GetAuth(ctx); ok {
		if uid, perr := uuid.Parse(auth.UserID); perr == nil {
			note.CreatedBy = uid
		}
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("create case note failed", zap.Error(err))
		return CaseNoteResponse{}, err
	}

	note.CreatedAt = time.Now().UTC()
	return mapToResponse(*note), nil
}

func (s *service) ListByClient(ctx context.Context, clientID string) ([]CaseNoteResponse, error) {
	cid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, casenoteerrors.ErrCaseNoteNotFound
	}

	auth, _ := contextutil.GetAuth(ctx)

	notes, err := s.repo.FindAllByClient(ctx, cid, auth.Segments)
	if err != nil {
		s.logger.Error("list case notes failed", zap.Error(err))
		return nil, err
	}

	res := make([]CaseNoteResponse, len(notes))
	for i, note := range notes {
		res[i] = mapToResponse(note)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return casenoteerrors.ErrInvalidCaseNoteID
	}

	note, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if note == nil {
		return casenoteerrors.ErrCaseNoteNotFound
	}

	auth, _ := contextutil.GetAuth(ctx)
	if auth.Role != contextutil.RoleAdmin && note.CreatedBy.String() != auth.UserID {
		s.logger.Warn("case note delete denied",
			zap.String("case_note_id", id),
			zap.String("user_id", auth.UserID),
		)
		return casenoteerrors.ErrNotNoteOwner
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		s.logger.Error("delete case note failed", zap.String("case_note_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("case note deleted",
		zap.String("case_note_id", id),
		zap.String("deleted_by", auth.UserID),
	)
	return nil
}

func mapToResponse(note CaseNote) CaseNoteResponse {
	resp := CaseNoteResponse{
		ID:        note.ID.String(),
		ClientID:  note.ClientID.String(),
		NoteType:  note.NoteType,
		Content:   note.Content,
		SegmentID: note.SegmentID,
		CreatedBy: note.CreatedBy.String(),
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
	}
	if note.ClientServiceID != nil {
		resp.ClientServiceID = note.ClientServiceID.String()
	}
	return resp
}
