package clientserviceerrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrClientServiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client service not found",
		http.StatusNotFound,
	)

	ErrInvalidClientServiceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid client service ID",
		http.StatusBadRequest,
	)

	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)

	ErrCombinationNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"The selected service combination does not exist in master data. Please add it on the Master Data page first.",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status, expected one of: Planned, In Progress, Closed",
		http.StatusBadRequest,
	)

	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid service start date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
