package employeeerrors

import (
	"net/http"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"employee is not active",
		http.StatusBadRequest,
	)
)
