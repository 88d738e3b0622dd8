package casenote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=casenote_repo.go -destination=mock/casenote_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, note *CaseNote) error
	FindByID(ctx context.Context, id uuid.UUID) (*CaseNote, error)
	FindAllByClient(ctx context.Context, clientID uuid.UUID, visibleSegments []int64) ([]CaseNote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, note *CaseNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*CaseNote, error) {
	var note CaseNote
	err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *repository) FindAllByClient(ctx context.Context, clientID uuid.UUID, visibleSegments []int64) ([]CaseNote, error) {
	var notes []CaseNote
	q := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc")
	if visibleSegments != nil {
		q = q.Where("segment_id IS NULL OR segment_id IN ?", visibleSegments)
	}
	err := q.Find(&notes).Error
	return notes, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&CaseNote{}, "id = ?", id).Error
}
