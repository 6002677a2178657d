package paysliperrors

import (
	"net/http"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrDuplicatePayslip = apperror.New(
		apperror.CodeConflict,
		"payslip already exists for this pay run and employee",
		http.StatusConflict,
	)
	ErrNegativeNetAmount = apperror.New(
		apperror.CodeInvalidInput,
		"deductions exceed gross amount, net amount would be negative",
		http.StatusUnprocessableEntity,
	)
)
