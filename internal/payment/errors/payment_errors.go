package paymenterrors

import (
	"net/http"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"payment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidMethod = apperror.New(
		apperror.CodeInvalidInput,
		"unknown payment method",
		http.StatusBadRequest,
	)
	ErrAlreadyFullyPaid = apperror.New(
		apperror.CodeInvalidState,
		"payslip is already fully paid",
		http.StatusConflict,
	)
	ErrAlreadyReversed = apperror.New(
		apperror.CodeInvalidState,
		"payment was already reversed",
		http.StatusConflict,
	)
	ErrLedgerIntegrity = apperror.New(
		apperror.CodeIntegrityError,
		"payment ledger exceeds payslip net amount",
		http.StatusInternalServerError,
	)
)

// AmountExceedsRemaining membawa sisa tagihan terkini supaya client bisa
// menampilkan panduan presisi ("sisa 45.000") tanpa round-trip tambahan.
func AmountExceedsRemaining(remaining int64) *apperror.AppError {
	err := apperror.New(
		apperror.CodeInvalidInput,
		"payment amount exceeds remaining balance",
		http.StatusUnprocessableEntity,
	)
	return err.WithDetails(map[string]any{
		"remaining": remaining,
	})
}
