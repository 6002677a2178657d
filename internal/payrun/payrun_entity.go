package payrun

import (
	"time"

	"github.com/google/uuid"
)

// Transisi status monoton satu arah: DRAFT -> APPROVED -> CLOSED.
// Tidak ada edge balik, tidak ada loncatan.
const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusClosed   = "CLOSED"
)

type PayRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_payrun_company_status"`
	RunNumber string    `gorm:"type:varchar(30);not null"`
	Title     string    `gorm:"type:varchar(150);not null"`

	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payrun_company_status"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time `gorm:"index"`
	ClosedAt   *time.Time
	ArchivedAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employees []PayRunEmployee `gorm:"foreignKey:PayRunID"`
}

func (PayRun) TableName() string {
	return "pay_runs"
}

// PayRunEmployee adalah baris keanggotaan ber-urut; set-nya immutable
// setelah approval.
type PayRunEmployee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayRunID   uuid.UUID `gorm:"type:uuid;not null;index:uq_payrun_member,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:uq_payrun_member,unique"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time
}

func (PayRunEmployee) TableName() string {
	return "pay_run_employees"
}

// EmployeeIDs mengembalikan id employee sesuai urutan saat run dibuat.
func (p PayRun) EmployeeIDs() []string {
	ids := make([]string, len(p.Employees))
	for i, m := range p.Employees {
		ids[i] = m.EmployeeID.String()
	}
	return ids
}
