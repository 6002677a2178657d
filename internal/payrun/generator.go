package payrun

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/deduction"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	payrunerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
	paysliperrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip/errors"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/salary"
)

// Generator membuat seluruh payslip satu pay run sebagai satu unit:
// semua berhasil atau transaksi approval di-rollback utuh.
type Generator struct {
	employees  employee.Repository
	resolver   salary.Resolver
	deductions deduction.Calculator
	payslips   payslip.Repository
}

func NewGenerator(
	employees employee.Repository,
	resolver salary.Resolver,
	deductions deduction.Calculator,
	payslips payslip.Repository,
) *Generator {
	return &Generator{
		employees:  employees,
		resolver:   resolver,
		deductions: deductions,
		payslips:   payslips,
	}
}

// Generate dipanggil sekali per approval, di dalam transaksi yang juga
// mem-flip status run. Urutan payslip mengikuti urutan keanggotaan run.
func (g *Generator) Generate(ctx context.Context, tx *sql.Tx, run *PayRun) ([]payslip.Payslip, error) {
	ids := run.EmployeeIDs()

	members, err := g.employees.FindActiveByIDs(ctx, run.CompanyID.String(), ids)
	if err != nil {
		return nil, err
	}
	if len(members) != len(ids) {
		return nil, payrunerrors.ErrEmployeeNotInCompany
	}

	byID := make(map[string]employee.Employee, len(members))
	for _, m := range members {
		byID[m.ID.String()] = m
	}

	payslips := make([]payslip.Payslip, 0, len(ids))
	for _, id := range ids {
		emp := byID[id]

		gross, err := g.resolver.Resolve(emp)
		if err != nil {
			return nil, err
		}

		totalDeductions, err := g.deductions.TotalFor(ctx, tx, run.CompanyID.String(), id)
		if err != nil {
			return nil, err
		}

		net := gross - totalDeductions
		if net < 0 {
			return nil, paysliperrors.ErrNegativeNetAmount.WithDetails(map[string]any{
				"employee_id":      id,
				"gross_amount":     gross,
				"total_deductions": totalDeductions,
			})
		}

		payslips = append(payslips, payslip.Payslip{
			ID:              uuid.New(),
			CompanyID:       run.CompanyID,
			PayRunID:        run.ID,
			EmployeeID:      emp.ID,
			GrossAmount:     gross,
			TotalDeductions: totalDeductions,
			NetAmount:       net,
			Status:          payslip.StatusUnpaid,
		})
	}

	if err := g.payslips.WithTx(tx).CreateBatch(ctx, payslips); err != nil {
		return nil, payslip.MapRepositoryError(err)
	}

	return payslips, nil
}
