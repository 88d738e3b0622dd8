package segmenterrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrSegmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Segment not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidSegmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid segment ID",
		http.StatusBadRequest,
	)
)
