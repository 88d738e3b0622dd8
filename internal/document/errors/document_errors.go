package documenterrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrSegmentForbidden = apperror.New(
		apperror.CodeForbidden,
		"Access denied: Segment does not belong to your company",
		http.StatusForbidden,
	)

	ErrMissingFile = apperror.New(
		apperror.CodeInvalidInput,
		"A file is required",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the maximum allowed size",
		http.StatusRequestEntityTooLarge,
	)

	ErrStorageFailure = apperror.New(
		apperror.CodeInternalError,
		"Failed to store document",
		http.StatusInternalServerError,
	)
)
