package employee

import (
	"time"

	"github.com/google/uuid"
)

// Tipe kontrak menentukan field rate mana yang otoritatif untuk payroll.
const (
	ContractDaily      = "DAILY"
	ContractFixed      = "FIXED"
	ContractHonorarium = "HONORARIUM"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName  string    `gorm:"type:varchar(120);not null"`
	Email     string    `gorm:"uniqueIndex"`
	Position  string    `gorm:"type:varchar(120)"`

	ContractType string `gorm:"type:varchar(20);not null"`

	// Satuan terkecil (sen) untuk hindari floating error.
	// Hanya satu yang otoritatif, sesuai ContractType.
	DailyRate   int64 `gorm:"type:bigint;not null;default:0"`
	FixedSalary int64 `gorm:"type:bigint;not null;default:0"`
	HourlyRate  int64 `gorm:"type:bigint;not null;default:0"`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
