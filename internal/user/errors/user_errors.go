package usererrors

import (
	"go-careflow/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		"Username is already taken",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin or user",
		http.StatusBadRequest,
	)

	ErrCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Non-admin users must be assigned to a company",
		http.StatusBadRequest,
	)
)
