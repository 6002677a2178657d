package deduction

import (
	"time"

	"github.com/google/uuid"
)

// DeductionEntry adalah potongan tetap per employee (BPJS, pinjaman, dll).
// Core payroll hanya mengkonsumsi totalnya saat generate payslip; perhitungan
// pajak progresif tetap di sistem eksternal.
type DeductionEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"type:varchar(120);not null"`
	Amount     int64     `gorm:"type:bigint;not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DeductionEntry) TableName() string {
	return "deduction_entries"
}
