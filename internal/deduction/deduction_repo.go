package deduction

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

//go:generate mockgen -source=deduction_repo.go -destination=mock/deduction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *DeductionEntry) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]DeductionEntry, error)
	Deactivate(ctx context.Context, companyID, id string) error
	SumActiveByEmployee(ctx context.Context, companyID, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, entry *DeductionEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]DeductionEntry, error) {
	var entries []DeductionEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Deactivate(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Model(&DeductionEntry{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// SumActiveByEmployee jalan lewat *sql.Tx bila ada, supaya total deduction
// yang dipakai generator dibaca dalam transaksi approval yang sama.
func (r *repository) SumActiveByEmployee(ctx context.Context, companyID, employeeID string) (int64, error) {
	query := `
SELECT COALESCE(SUM(amount), 0)
FROM deduction_entries
WHERE company_id = $1 AND employee_id = $2 AND is_active = TRUE
`

	var total int64
	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, query, companyID, employeeID).Scan(&total)
		return total, err
	}

	err := r.db.WithContext(ctx).Raw(query, companyID, employeeID).Scan(&total).Error
	return total, err
}
