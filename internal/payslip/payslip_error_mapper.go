package payslip

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	paysliperrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip/errors"
)

// MapRepositoryError menerjemahkan pelanggaran unique index
// (pay_run_id, employee_id) menjadi error domain duplikasi payslip.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payslip_run_employee" {
			return paysliperrors.ErrDuplicatePayslip
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payslip_run_employee") {
		return paysliperrors.ErrDuplicatePayslip
	}

	return err
}
