package salaryerrors

import (
	"fmt"
	"net/http"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

func UnsupportedContractType(employeeID, contractType string) *apperror.AppError {
	err := apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("unsupported contract type %q", contractType),
		http.StatusUnprocessableEntity,
	)
	return err.WithDetails(map[string]any{
		"employee_id":   employeeID,
		"contract_type": contractType,
	})
}

// MissingRate menandai rate otoritatif yang kosong/nol: error kualitas data
// yang harus dibereskan di master employee, bukan di-default-kan ke nol.
func MissingRate(employeeID, rateField string) *apperror.AppError {
	err := apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("employee has no usable %s", rateField),
		http.StatusUnprocessableEntity,
	)
	return err.WithDetails(map[string]any{
		"employee_id": employeeID,
		"rate_field":  rateField,
	})
}
