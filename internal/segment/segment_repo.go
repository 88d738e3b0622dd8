package segment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/segment_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, segment *Segment) error
	// FindByID returns (nil, nil) when the segment does not exist so callers
	// can distinguish absence from storage failure.
	FindByID(ctx context.Context, id int64) (*Segment, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Segment, error)
	UpdateName(ctx context.Context, id int64, name string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, segment *Segment) error {
	return r.db.WithContext(ctx).Create(segment).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Segment, error) {
	var seg Segment
	err := r.db.WithContext(ctx).First(&seg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Segment, error) {
	var segs []Segment
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&segs).Error
	return segs, err
}

func (r *repository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&Segment{}).
		Where("id = ?", id).
		Update("name", name).Error
}
