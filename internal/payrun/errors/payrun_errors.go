package payrunerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be strictly before period_end",
		http.StatusBadRequest,
	)
	ErrEmptySelection = apperror.New(
		apperror.CodeInvalidInput,
		"a pay run needs at least one employee",
		http.StatusBadRequest,
	)
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"employee ids contain duplicates",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"one or more employees do not belong to this company or are inactive",
		http.StatusBadRequest,
	)
	ErrPayRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay run not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"pay run status only moves DRAFT -> APPROVED -> CLOSED",
		http.StatusConflict,
	)
	ErrImmutableAfterApproval = apperror.New(
		apperror.CodeInvalidState,
		"pay run can only be edited while status is DRAFT",
		http.StatusConflict,
	)
	ErrAlreadyGenerated = apperror.New(
		apperror.CodeInvalidState,
		"pay run is already approved, payslips were generated once",
		http.StatusConflict,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"pay run can only be deleted while status is DRAFT, archive it instead",
		http.StatusConflict,
	)
	ErrArchiveOnlyClosed = apperror.New(
		apperror.CodeInvalidState,
		"pay run can only be archived once CLOSED",
		http.StatusConflict,
	)
)
