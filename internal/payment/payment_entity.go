package payment

import (
	"time"

	"github.com/google/uuid"
)

const (
	MethodCash         = "CASH"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodEwallet      = "EWALLET"
	MethodCheque       = "CHEQUE"
)

// Payment bersifat append-only: tidak ada edit, tidak ada delete. Salah input
// dikoreksi lewat reversal (compensating entry) yang menempel di baris asli,
// jadi jejak audit tidak pernah hilang.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	PayslipID uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount int64     `gorm:"type:bigint;not null"`
	Method string    `gorm:"type:varchar(20);not null"`
	PaidAt time.Time `gorm:"not null;index"`
	Notes  *string   `gorm:"type:text"`

	ReversedAt     *time.Time `gorm:"index"`
	ReversalReason *string    `gorm:"type:text"`
	ReversedBy     *uuid.UUID `gorm:"type:uuid"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (Payment) TableName() string {
	return "payments"
}

func (p Payment) Reversed() bool {
	return p.ReversedAt != nil
}

func ValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodBankTransfer, MethodEwallet, MethodCheque:
		return true
	default:
		return false
	}
}
