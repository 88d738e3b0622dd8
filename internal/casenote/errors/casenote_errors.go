package casenoteerrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrCaseNoteNotFound = apperror.New(
		apperror.CodeNotFound,
		"Case note not found",
		http.StatusNotFound,
	)

	ErrInvalidCaseNoteID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid case note ID",
		http.StatusBadRequest,
	)

	ErrNotNoteOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the author or an administrator can delete a case note",
		http.StatusForbidden,
	)
)
