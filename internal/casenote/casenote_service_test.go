package casenote_test

import (
	"context"
	"testing"

	"go-careflow/internal/casenote"
	casenoteerrors "go-careflow/internal/casenote/errors"
	casenoteMock "go-careflow/internal/casenote/mock"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type caseNoteDeps struct {
	service casenote.Service
	repo    *casenoteMock.MockRepository
}

func setupCaseNoteTest(t *testing.T) *caseNoteDeps {
	ctrl := gomock.NewController(t)
	repo := casenoteMock.NewMockRepository(ctrl)

	return &caseNoteDeps{
		service: casenote.NewService(repo),
		repo:    repo,
	}
}

func authCtx(userID uuid.UUID, role string) context.Context {
	return contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID: userID.String(),
		Role:   role,
	})
}

func TestCaseNoteService_Create(t *testing.T) {
	author := uuid.New()
	clientID := uuid.New()

	t.Run("stamps the author from the caller", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(author, contextutil.RoleUser)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, note *casenote.CaseNote) error {
				assert.Equal(t, author, note.CreatedBy)
				assert.Equal(t, clientID, note.ClientID)
				return nil
			})

		resp, err := deps.service.Create(ctx, casenote.CreateCaseNoteRequest{
			ClientID: clientID.String(),
			NoteType: "progress",
			Content:  "Settled into the new routine well.",
		})
		assert.NoError(t, err)
		assert.Equal(t, author.String(), resp.CreatedBy)
		assert.Empty(t, resp.ClientServiceID)
	})

	t.Run("links an assignment when one is given", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(author, contextutil.RoleUser)
		csID := uuid.New()

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, note *casenote.CaseNote) error {
				assert.NotNil(t, note.ClientServiceID)
				assert.Equal(t, csID, *note.ClientServiceID)
				return nil
			})

		resp, err := deps.service.Create(ctx, casenote.CreateCaseNoteRequest{
			ClientID:        clientID.String(),
			ClientServiceID: csID.String(),
			NoteType:        "incident",
			Content:         "Missed visit, rescheduled for Friday.",
		})
		assert.NoError(t, err)
		assert.Equal(t, csID.String(), resp.ClientServiceID)
	})

	t.Run("rejects a malformed client id", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(author, contextutil.RoleUser)

		_, err := deps.service.Create(ctx, casenote.CreateCaseNoteRequest{
			ClientID: "not-a-uuid",
			NoteType: "progress",
			Content:  "x",
		})
		assert.ErrorIs(t, err, casenoteerrors.ErrInvalidCaseNoteID)
	})
}

func TestCaseNoteService_Delete(t *testing.T) {
	author := uuid.New()
	other := uuid.New()
	noteID := uuid.New()

	note := &casenote.CaseNote{
		ID:        noteID,
		ClientID:  uuid.New(),
		CreatedBy: author,
	}

	t.Run("author can delete their own note", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(author, contextutil.RoleUser)

		deps.repo.EXPECT().FindByID(ctx, noteID).Return(note, nil)
		deps.repo.EXPECT().Delete(ctx, noteID).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, noteID.String()))
	})

	t.Run("admin can delete anyone's note", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(other, contextutil.RoleAdmin)

		deps.repo.EXPECT().FindByID(ctx, noteID).Return(note, nil)
		deps.repo.EXPECT().Delete(ctx, noteID).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, noteID.String()))
	})

	t.Run("another user is refused", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(other, contextutil.RoleUser)

		deps.repo.EXPECT().FindByID(ctx, noteID).Return(note, nil)

		err := deps.service.Delete(ctx, noteID.String())
		assert.ErrorIs(t, err, casenoteerrors.ErrNotNoteOwner)
	})

	t.Run("missing note", func(t *testing.T) {
		deps := setupCaseNoteTest(t)
		ctx := authCtx(author, contextutil.RoleUser)

		deps.repo.EXPECT().FindByID(ctx, noteID).Return(nil, nil)

		err := deps.service.Delete(ctx, noteID.String())
		assert.ErrorIs(t, err, casenoteerrors.ErrCaseNoteNotFound)
	})
}

func TestCaseNoteService_ListByClient(t *testing.T) {
	deps := setupCaseNoteTest(t)

	clientID := uuid.New()
	segID := int64(2)
	ctx := contextutil.WithAuth(context.Background(), contextutil.AuthContext{
		UserID:           uuid.NewString(),
		Role:             contextutil.RoleUser,
		CompanyID:        uuid.NewString(),
		Segments:         []int64{2},
		SegmentsResolved: true,
	})

	deps.repo.EXPECT().
		FindAllByClient(ctx, clientID, []int64{2}).
		Return([]casenote.CaseNote{
			{ID: uuid.New(), ClientID: clientID, NoteType: "progress", SegmentID: &segID, CreatedBy: uuid.New()},
		}, nil)

	resp, err := deps.service.ListByClient(ctx, clientID.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "progress", resp[0].NoteType)
}
