package clientservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=clientservice_repo.go -destination=mock/clientservice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cs *ClientService) error
	FindByID(ctx context.Context, id uuid.UUID) (*ClientService, error)
	// FindAll restricts rows to the visible segment set; nil means
	// unrestricted. Unscoped rows are always included.
	FindAll(ctx context.Context, visibleSegments []int64) ([]ClientService, error)
	FindAllByClient(ctx context.Context, clientID uuid.UUID, visibleSegments []int64) ([]ClientService, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ClientExists(ctx context.Context, clientID uuid.UUID) (bool, error)
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

func (r *repository) Create(ctx context.Context, cs *ClientService) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*ClientService, error) {
	var cs ClientService
	err := r.db.WithContext(ctx).First(&cs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *repository) FindAll(ctx context.Context, visibleSegments []int64) ([]ClientService, error) {
	var rows []ClientService
	q := r.db.WithContext(ctx).Order("service_start_date desc")
	if visibleSegments != nil {
		q = q.Where("segment_id IS NULL OR segment_id IN ?", visibleSegments)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByClient(ctx context.Context, clientID uuid.UUID, visibleSegments []int64) ([]ClientService, error) {
	var rows []ClientService
	q := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("service_start_date desc")
	if visibleSegments != nil {
		q = q.Where("segment_id IS NULL OR segment_id IN ?", visibleSegments)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&ClientService{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) ClientExists(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("id = ?", clientID).
		Count(&count).Error
	return count > 0, err
}
