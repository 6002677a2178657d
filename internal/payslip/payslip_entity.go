package payslip

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnpaid        = "UNPAID"
	StatusPartiallyPaid = "PARTIALLY_PAID"
	StatusPaid          = "PAID"
)

// Payslip dibuat sekali saat pay run di-approve. Field moneter immutable;
// hanya AmountPaid + Status yang berubah, selalu dalam transaksi yang sama
// dengan penulisan payment.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PayRunID   uuid.UUID `gorm:"type:uuid;not null;index:uq_payslip_run_employee,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:uq_payslip_run_employee,unique"`

	// Satuan terkecil (sen). NetAmount = GrossAmount - TotalDeductions,
	// dihitung sekali saat generate.
	GrossAmount     int64 `gorm:"type:bigint;not null"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0"`
	NetAmount       int64 `gorm:"type:bigint;not null"`

	// Derived dari ledger pembayaran, tidak pernah di-set manual.
	AmountPaid int64  `gorm:"type:bigint;not null;default:0"`
	Status     string `gorm:"type:varchar(20);not null;default:'UNPAID';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveStatus adalah satu-satunya sumber kebenaran status pembayaran:
// fungsi murni dari jumlah terbayar vs net.
func DeriveStatus(amountPaid, netAmount int64) string {
	switch {
	case amountPaid <= 0:
		return StatusUnpaid
	case amountPaid < netAmount:
		return StatusPartiallyPaid
	default:
		return StatusPaid
	}
}

// Remaining mengembalikan sisa tagihan, tidak pernah negatif.
func (p Payslip) Remaining() int64 {
	remaining := p.NetAmount - p.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}
