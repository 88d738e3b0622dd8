package masterdata

import (
	"errors"
	"strings"

	masterdataerrors "go-careflow/internal/masterdata/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return masterdataerrors.ErrMasterDataNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_master_data_combination" {
			return masterdataerrors.ErrCombinationExists
		}
	}

	// Driver-agnostic fallback for wrapped duplicate-key errors.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_master_data_combination") {
		return masterdataerrors.ErrCombinationExists
	}

	return err
}
