package payment

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payment) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payment, error)
	FindAllByPayslip(ctx context.Context, companyID string, payslipID string) ([]Payment, error)
	SumEffectiveByPayslip(ctx context.Context, payslipID string) (int64, error)
	MarkReversed(ctx context.Context, id string, reason string, reversedBy string) (bool, error)
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

func (r *repository) Create(ctx context.Context, p *Payment) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(p).Error
	}

	query := `
INSERT INTO payments (
	id, company_id, payslip_id, amount, method, paid_at, notes,
	created_by, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
`
	_, err := r.tx.ExecContext(ctx, query,
		p.ID, p.CompanyID, p.PayslipID, p.Amount, p.Method, p.PaidAt, p.Notes, p.CreatedBy,
	)
	return err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Riwayat pembayaran per payslip, urut kronologis tanggal bayar.
func (r *repository) FindAllByPayslip(ctx context.Context, companyID string, payslipID string) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payslip_id = ?", payslipID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

// SumEffectiveByPayslip menjumlahkan pembayaran yang belum di-reverse.
// Di dalam transaksi pembayaran, baris payslip sudah di-lock oleh caller,
// jadi angka ini stabil sampai commit.
func (r *repository) SumEffectiveByPayslip(ctx context.Context, payslipID string) (int64, error) {
	query := `
SELECT COALESCE(SUM(amount), 0)
FROM payments
WHERE payslip_id = $1 AND reversed_at IS NULL
`

	var total int64
	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, query, payslipID).Scan(&total)
		return total, err
	}

	err := r.db.WithContext(ctx).Raw(query, payslipID).Scan(&total).Error
	return total, err
}

// MarkReversed hanya berhasil sekali per payment (guard reversed_at IS NULL).
func (r *repository) MarkReversed(ctx context.Context, id string, reason string, reversedBy string) (bool, error) {
	if r.tx == nil {
		return false, sql.ErrTxDone
	}

	query := `
UPDATE payments
SET reversed_at = NOW(), reversal_reason = $2, reversed_by = $3
WHERE id = $1 AND reversed_at IS NULL
`
	res, err := r.tx.ExecContext(ctx, query, id, reason, reversedBy)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
