package deductionerrors

import (
	"net/http"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrNegativeDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"deduction total cannot be negative",
		http.StatusUnprocessableEntity,
	)
)
