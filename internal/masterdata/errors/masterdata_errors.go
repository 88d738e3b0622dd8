package masterdataerrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrMasterDataNotFound = apperror.New(
		apperror.CodeNotFound,
		"Master data entry not found",
		http.StatusNotFound,
	)

	ErrCombinationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Service combination not found. Verify the category, type and provider for the selected segment.",
		http.StatusNotFound,
	)

	ErrCombinationExists = apperror.New(
		apperror.CodeConflict,
		"This service combination already exists for the selected segment",
		http.StatusConflict,
	)

	ErrCombinationInUse = apperror.New(
		apperror.CodeConflict,
		"Cannot update master data: client services still reference this combination",
		http.StatusConflict,
	)

	ErrCombinationStillReferenced = apperror.New(
		apperror.CodeConflict,
		"Cannot delete master data: client services still reference this combination",
		http.StatusConflict,
	)

	ErrInvalidMasterDataID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid master data ID",
		http.StatusBadRequest,
	)
)
