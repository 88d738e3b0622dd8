package masterdata

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=masterdata_repo.go -destination=mock/masterdata_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, md *MasterData) error
	FindByID(ctx context.Context, id int64) (*MasterData, error)
	// FindAll restricts rows to the visible segment set; nil means
	// unrestricted (global admin). Unscoped rows are always included.
	FindAll(ctx context.Context, visibleSegments []int64) ([]MasterData, error)
	Exists(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error)
	// ExistsActive is the assignment-facing variant: deactivated entries
	// do not count.
	ExistsActive(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error)
	FindReferencingServices(ctx context.Context, category, serviceType, provider string, segmentID *int64) ([]ReferencingService, error)
	Update(ctx context.Context, md *MasterData) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose queries run on the caller's
// transaction instead of the pooled connection.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, md *MasterData) error {
	return r.db.WithContext(ctx).Create(md).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*MasterData, error) {
	var md MasterData
	err := r.db.WithContext(ctx).First(&md, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *repository) FindAll(ctx context.Context, visibleSegments []int64) ([]MasterData, error) {
	var rows []MasterData
	q := r.db.WithContext(ctx).Order("service_category asc, service_type asc")
	if visibleSegments != nil {
		q = q.Where("segment_id IS NULL OR segment_id IN ?", visibleSegments)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) Exists(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error) {
	return r.countCombination(ctx, category, serviceType, provider, segmentID, false)
}

func (r *repository) ExistsActive(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error) {
	return r.countCombination(ctx, category, serviceType, provider, segmentID, true)
}

func (r *repository) countCombination(ctx context.Context, category, serviceType, provider string, segmentID *int64, activeOnly bool) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&MasterData{}).
		Where("service_category = ? AND service_type = ? AND service_provider = ?",
			category, serviceType, provider)
	q = scopeSegment(q, "segment_id", segmentID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindReferencingServices(ctx context.Context, category, serviceType, provider string, segmentID *int64) ([]ReferencingService, error) {
	var rows []ReferencingService
	q := r.db.WithContext(ctx).
		Table("client_services AS cs").
		Select("c.first_name || ' ' || c.last_name AS client_name, cs.status, cs.service_start_date").
		Joins("JOIN clients c ON c.id = cs.client_id").
		Where("cs.service_category = ? AND cs.service_type = ? AND cs.service_provider = ?",
			category, serviceType, provider)
	q = scopeSegment(q, "cs.segment_id", segmentID)

	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, md *MasterData) error {
	return r.db.WithContext(ctx).Save(md).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&MasterData{}, "id = ?", id).Error
}

// scopeSegment matches the nullable segment column: nil matches only
// unscoped rows, never "any".
func scopeSegment(q *gorm.DB, column string, segmentID *int64) *gorm.DB {
	if segmentID == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *segmentID)
}
