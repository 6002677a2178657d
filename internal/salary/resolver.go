package salary

import (
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	salaryerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/salary/errors"
)

// Resolver menentukan satu base amount otoritatif per employee untuk satu
// pay run. Tidak ada fallback antar field rate: rate yang hilang adalah error
// data, bukan nol diam-diam.
type Resolver interface {
	Resolve(emp employee.Employee) (int64, error)
}

type resolver struct{}

func NewResolver() Resolver {
	return &resolver{}
}

func (r *resolver) Resolve(emp employee.Employee) (int64, error) {
	switch emp.ContractType {
	case employee.ContractDaily:
		if emp.DailyRate <= 0 {
			return 0, salaryerrors.MissingRate(emp.ID.String(), "daily_rate")
		}
		return emp.DailyRate, nil

	case employee.ContractFixed:
		if emp.FixedSalary <= 0 {
			return 0, salaryerrors.MissingRate(emp.ID.String(), "fixed_salary")
		}
		return emp.FixedSalary, nil

	case employee.ContractHonorarium:
		// hourly_rate dipakai sebagai nominal flat per periode, tanpa dikali
		// jam kerja. TODO: konfirmasi ke pemilik bisnis apakah honorarium
		// memang flat; jam kerja sudah dicatat di sistem absensi tapi belum
		// pernah di-join ke sini.
		if emp.HourlyRate <= 0 {
			return 0, salaryerrors.MissingRate(emp.ID.String(), "hourly_rate")
		}
		return emp.HourlyRate, nil

	default:
		return 0, salaryerrors.UnsupportedContractType(emp.ID.String(), emp.ContractType)
	}
}
