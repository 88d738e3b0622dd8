package document_test

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"go-careflow/internal/document"
	documenterrors "go-careflow/internal/document/errors"
	documentMock "go-careflow/internal/document/mock"
	"go-careflow/internal/messaging/kafka"
	kafkaMock "go-careflow/internal/messaging/kafka/mock"
	"go-careflow/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeStorage struct {
	saved   map[string][]byte
	openErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (s *fakeStorage) Save(path string, src io.Reader) (int64, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	s.saved[path] = data
	return int64(len(data)), nil
}

func (s *fakeStorage) Open(path string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.saved[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

type documentDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service document.Service
	repo    *documentMock.MockRepository
	storage *fakeStorage
	outbox  *kafkaMock.MockOutboxRepository
}

func setupDocumentTest(t *testing.T) *documentDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := documentMock.NewMockRepository(ctrl)
	storage := newFakeStorage()
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &documentDeps{
		db:      db,
		sqlMock: sqlMock,
		service: document.NewService(db, repo, storage, outbox),
		repo:    repo,
		storage: storage,
		outbox:  outbox,
	}
}

func TestDocumentService_Upload(t *testing.T) {
	uploader := uuid.New()
	clientID := uuid.New()
	ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID: uploader.String(),
		Role:   contextutil.RoleUser,
	})

	t.Run("stores bytes, row and outbox event together", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, doc *document.Document) error {
				assert.Equal(t, clientID, doc.ClientID)
				assert.Equal(t, uploader, doc.UploadedBy)
				assert.Equal(t, int64(11), doc.SizeBytes)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "care.document.uploaded.v1", event.Topic)
				assert.Equal(t, "document_uploaded", event.EventType)
				assert.Equal(t, "document", event.AggregateType)
				return nil
			})

		resp, err := deps.service.Upload(ctx,
			document.UploadDocumentRequest{ClientID: clientID.String(), Category: "care-plan"},
			"plan.pdf", "application/pdf", 11, strings.NewReader("hello bytes"))

		assert.NoError(t, err)
		assert.Equal(t, "plan.pdf", resp.FileName)
		assert.Len(t, deps.storage.saved, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("oversized upload is refused before touching storage", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upload(ctx,
			document.UploadDocumentRequest{ClientID: clientID.String(), Category: "care-plan"},
			"huge.bin", "application/octet-stream", document.MaxUploadBytes+1, strings.NewReader("x"))

		assert.ErrorIs(t, err, documenterrors.ErrFileTooLarge)
		assert.Empty(t, deps.storage.saved)
	})

	t.Run("upload into a foreign segment is refused", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		foreignSeg := int64(9)
		scoped := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID:           uploader.String(),
			Role:             contextutil.RoleUser,
			CompanyID:        uuid.NewString(),
			Segments:         []int64{1, 2},
			SegmentsResolved: true,
		})

		_, err := deps.service.Upload(scoped,
			document.UploadDocumentRequest{
				ClientID:  clientID.String(),
				Category:  "care-plan",
				SegmentID: &foreignSeg,
			},
			"plan.pdf", "application/pdf", 11, strings.NewReader("hello bytes"))

		assert.ErrorIs(t, err, documenterrors.ErrSegmentForbidden)
		assert.Empty(t, deps.storage.saved)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls the row back", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(assert.AnError)

		_, err := deps.service.Upload(ctx,
			document.UploadDocumentRequest{ClientID: clientID.String(), Category: "consent"},
			"consent.pdf", "application/pdf", 4, strings.NewReader("data"))

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDocumentService_SegmentVisibility(t *testing.T) {
	docID := uuid.New()
	foreignSeg := int64(9)

	stored := &document.Document{
		ID:        docID,
		ClientID:  uuid.New(),
		FileName:  "notes.pdf",
		SegmentID: &foreignSeg,
	}

	t.Run("document in an invisible segment reads as not found", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID:           uuid.NewString(),
			Role:             contextutil.RoleUser,
			CompanyID:        uuid.NewString(),
			Segments:         []int64{1, 2},
			SegmentsResolved: true,
		})

		deps.repo.EXPECT().FindByID(ctx, docID).Return(stored, nil)

		_, err := deps.service.GetByID(ctx, docID.String())
		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})

	t.Run("global admin sees every segment", func(t *testing.T) {
		deps := setupDocumentTest(t)
		defer deps.db.Close()

		ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
			UserID:           uuid.NewString(),
			Role:             contextutil.RoleAdmin,
			SegmentsResolved: true,
		})

		deps.repo.EXPECT().FindByID(ctx, docID).Return(stored, nil)

		resp, err := deps.service.GetByID(ctx, docID.String())
		assert.NoError(t, err)
		assert.Equal(t, "notes.pdf", resp.FileName)
	})
}

func TestDocumentService_OpenContent(t *testing.T) {
	deps := setupDocumentTest(t)
	defer deps.db.Close()

	docID := uuid.New()
	stored := &document.Document{
		ID:          docID,
		ClientID:    uuid.New(),
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		StoragePath: "c/p",
	}
	deps.storage.saved["c/p"] = []byte("jpegbytes")

	ctx := context.Background()
	deps.repo.EXPECT().FindByID(ctx, docID).Return(stored, nil)

	meta, rc, err := deps.service.OpenContent(ctx, docID.String())
	assert.NoError(t, err)
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	assert.Equal(t, "jpegbytes", string(data))
	assert.Equal(t, "image/jpeg", meta.ContentType)
}
