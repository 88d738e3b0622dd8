package client

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/client_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	// FindAll restricts rows to the visible segment set; nil means
	// unrestricted. Unscoped rows are visible to everyone.
	FindAll(ctx context.Context, visibleSegments []int64) ([]Client, error)
	Update(ctx context.Context, client *Client) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, client *Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	var cl Client
	err := r.db.WithContext(ctx).First(&cl, "id = ?", id).Error
	return &cl, err
}

func (r *repository) FindAll(ctx context.Context, visibleSegments []int64) ([]Client, error) {
	var clients []Client
	q := r.db.WithContext(ctx).Order("last_name asc, first_name asc")
	if visibleSegments != nil {
		q = q.Where("segment_id IS NULL OR segment_id IN ?", visibleSegments)
	}
	err := q.Find(&clients).Error
	return clients, err
}

func (r *repository) Update(ctx context.Context, client *Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}
