package payslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, payslips []Payslip) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payslip, error)
	FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Payslip, error)
	FindAll(ctx context.Context, companyID string, filter GetPayslipsFilterRequest) ([]Payslip, error)
	UpdateSettlement(ctx context.Context, id string, amountPaid int64, status string) error
	CountByPayRun(ctx context.Context, companyID string, payRunID string) (int64, error)
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

// CreateBatch menulis seluruh payslip satu run dalam transaksi approval.
// Unique index (pay_run_id, employee_id) menjaga tidak pernah ada duplikat
// untuk pasangan yang sama walau approval dipanggil dua kali.
func (r *repository) CreateBatch(ctx context.Context, payslips []Payslip) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(&payslips).Error
	}

	query := `
INSERT INTO payslips (
	id, company_id, pay_run_id, employee_id,
	gross_amount, total_deductions, net_amount,
	amount_paid, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, NOW(), NOW())
`

	for _, p := range payslips {
		_, err := r.tx.ExecContext(ctx, query,
			p.ID, p.CompanyID, p.PayRunID, p.EmployeeID,
			p.GrossAmount, p.TotalDeductions, p.NetAmount,
			StatusUnpaid,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate mengunci baris payslip selama transaksi pembayaran
// berjalan: cek saldo dan penulisan payment harus satu unit atomik.
func (r *repository) FindByIDForUpdate(ctx context.Context, companyID string, id string) (*Payslip, error) {
	if r.tx == nil {
		return nil, sql.ErrTxDone
	}

	query := `
SELECT id, company_id, pay_run_id, employee_id,
	gross_amount, total_deductions, net_amount,
	amount_paid, status, created_at, updated_at
FROM payslips
WHERE id = $1 AND company_id = $2
FOR UPDATE
`

	var p Payslip
	err := r.tx.QueryRowContext(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.PayRunID, &p.EmployeeID,
		&p.GrossAmount, &p.TotalDeductions, &p.NetAmount,
		&p.AmountPaid, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter GetPayslipsFilterRequest) ([]Payslip, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC")

	if filter.PayRunID != "" {
		db = db.Where("pay_run_id = ?", filter.PayRunID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var payslips []Payslip
	err := db.Find(&payslips).Error
	return payslips, err
}

// UpdateSettlement hanya boleh dipanggil dalam transaksi yang menulis
// payment pemicu (status tidak pernah di-set lepas dari sum pembayaran).
func (r *repository) UpdateSettlement(ctx context.Context, id string, amountPaid int64, status string) error {
	query := `
UPDATE payslips
SET amount_paid = $2, status = $3, updated_at = NOW()
WHERE id = $1
`

	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, id, amountPaid, status)
		return err
	}

	return r.db.WithContext(ctx).Exec(query, id, amountPaid, status).Error
}

func (r *repository) CountByPayRun(ctx context.Context, companyID string, payRunID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(companyID)).
		Where("pay_run_id = ?", payRunID).
		Count(&count).Error
	return count, err
}
