package masterdata

import (
	"context"
	"database/sql"
	"errors"

	masterdataerrors "go-careflow/internal/masterdata/errors"
	"go-careflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=masterdata_service.go -destination=mock/masterdata_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateMasterDataRequest) (MasterDataResponse, error)
	List(ctx context.Context) ([]MasterDataResponse, error)
	GetByID(ctx context.Context, id int64) (MasterDataResponse, error)

	// Update applies only when no client service references the entry's
	// current combination; otherwise it fails with a conflict carrying the
	// referencing services.
	Update(ctx context.Context, id int64, req UpdateMasterDataRequest) (MasterDataResponse, error)

	// Delete is gated by the same referential guard as Update.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether the exact (category, type, provider, segment)
	// tuple is present. A nil segment matches only unscoped entries.
	Exists(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error)

	// ExistsActive additionally requires the entry to be active; new
	// assignments must not target deactivated taxonomy.
	ExistsActive(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error)

	// Verify is the handler-facing existence check: nil when present,
	// a guidance 404 when absent.
	Verify(ctx context.Context, req VerifyCombinationRequest) error

	// EnsureCombination creates the combination if missing. "Already
	// exists", whether seen by the pre-check or raised by the unique
	// index under a concurrent insert, is a non-fatal outcome.
	EnsureCombination(ctx context.Context, category, serviceType, provider string, segmentID *int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("masterdata.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("masterdata.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateMasterDataRequest) (MasterDataResponse, error) {
	exists, err := s.repo.Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID)
	if err != nil {
		return MasterDataResponse{}, err
	}
	if exists {
		return MasterDataResponse{}, masterdataerrors.ErrCombinationExists
	}

	md := &MasterData{
		ServiceCategory: req.ServiceCategory,
		ServiceType:     req.ServiceType,
		ServiceProvider: req.ServiceProvider,
		SegmentID:       req.SegmentID,
		Active:          true,
		CreatedBy:       callerID(ctx),
	}
	if req.Active != nil {
		md.Active = *req.Active
	}

	if err := s.repo.Create(ctx, md); err != nil {
		return MasterDataResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*md), nil
}

func (s *service) List(ctx context.Context) ([]MasterDataResponse, error) {
	auth, _ := contextutil.GetAuth(ctx)

	rows, err := s.repo.FindAll(ctx, auth.Segments)
	if err != nil {
		return nil, err
	}

	res := make([]MasterDataResponse, len(rows))
	for i, md := range rows {
		res[i] = mapToResponse(md)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (MasterDataResponse, error) {
	md, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MasterDataResponse{}, err
	}
	if md == nil {
		return MasterDataResponse{}, masterdataerrors.ErrMasterDataNotFound
	}
	return mapToResponse(*md), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateMasterDataRequest) (MasterDataResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MasterDataResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	md, err := qtx.FindByID(ctx, id)
	if err != nil {
		return MasterDataResponse{}, err
	}
	if md == nil {
		return MasterDataResponse{}, masterdataerrors.ErrMasterDataNotFound
	}

	// The guard checks the row's CURRENT combination: live services pin the
	// tuple they were created against.
	refs, err := qtx.FindReferencingServices(ctx,
		md.ServiceCategory, md.ServiceType, md.ServiceProvider, md.SegmentID)
	if err != nil {
		return MasterDataResponse{}, err
	}
	if len(refs) > 0 {
		s.logger.Warn("master data update blocked by referencing services",
			zap.Int64("master_data_id", id),
			zap.Int("referencing_count", len(refs)),
		)
		return MasterDataResponse{}, masterdataerrors.ErrCombinationInUse.WithDetails(ConflictDetails{
			ServiceCategory:     md.ServiceCategory,
			ServiceType:         md.ServiceType,
			ServiceProvider:     md.ServiceProvider,
			SegmentID:           md.SegmentID,
			ReferencingServices: refs,
		})
	}

	if req.ServiceCategory != "" {
		md.ServiceCategory = req.ServiceCategory
	}
	if req.ServiceType != "" {
		md.ServiceType = req.ServiceType
	}
	if req.ServiceProvider != "" {
		md.ServiceProvider = req.ServiceProvider
	}
	if req.Active != nil {
		md.Active = *req.Active
	}

	if err := qtx.Update(ctx, md); err != nil {
		return MasterDataResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return MasterDataResponse{}, err
	}

	return mapToResponse(*md), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	md, err := qtx.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if md == nil {
		return masterdataerrors.ErrMasterDataNotFound
	}

	refs, err := qtx.FindReferencingServices(ctx,
		md.ServiceCategory, md.ServiceType, md.ServiceProvider, md.SegmentID)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		s.logger.Warn("master data delete blocked by referencing services",
			zap.Int64("master_data_id", id),
			zap.Int("referencing_count", len(refs)),
		)
		return masterdataerrors.ErrCombinationStillReferenced.WithDetails(ConflictDetails{
			ServiceCategory:     md.ServiceCategory,
			ServiceType:         md.ServiceType,
			ServiceProvider:     md.ServiceProvider,
			SegmentID:           md.SegmentID,
			ReferencingServices: refs,
		})
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Exists(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error) {
	return s.repo.Exists(ctx, category, serviceType, provider, segmentID)
}

func (s *service) ExistsActive(ctx context.Context, category, serviceType, provider string, segmentID *int64) (bool, error) {
	return s.repo.ExistsActive(ctx, category, serviceType, provider, segmentID)
}

func (s *service) Verify(ctx context.Context, req VerifyCombinationRequest) error {
	exists, err := s.repo.Exists(ctx, req.ServiceCategory, req.ServiceType, req.ServiceProvider, req.SegmentID)
	if err != nil {
		return err
	}
	if !exists {
		return masterdataerrors.ErrCombinationNotFound
	}
	return nil
}

func (s *service) EnsureCombination(ctx context.Context, category, serviceType, provider string, segmentID *int64) error {
	exists, err := s.repo.Exists(ctx, category, serviceType, provider, segmentID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	md := &MasterData{
		ServiceCategory: category,
		ServiceType:     serviceType,
		ServiceProvider: provider,
		SegmentID:       segmentID,
		Active:          true,
		CreatedBy:       callerID(ctx),
	}

	if err := s.repo.Create(ctx, md); err != nil {
		// Two concurrent assignments may race past the existence check;
		// the loser's duplicate insert is expected and ignored.
		if errors.Is(mapRepositoryError(err), masterdataerrors.ErrCombinationExists) {
			s.logger.Info("combination already exists, skipping auto-create",
				zap.String("service_category", category),
				zap.String("service_type", serviceType),
				zap.String("service_provider", provider),
			)
			return nil
		}
		return err
	}
	return nil
}

func callerID(ctx context.Context) uuid.UUID {
	auth, ok := contextutil.GetAuth(ctx)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(auth.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func mapToResponse(md MasterData) MasterDataResponse {
	return MasterDataResponse{
		ID:              md.ID,
		ServiceCategory: md.ServiceCategory,
		ServiceType:     md.ServiceType,
		ServiceProvider: md.ServiceProvider,
		SegmentID:       md.SegmentID,
		Active:          md.Active,
	}
}
