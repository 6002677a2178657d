package reconciliation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

type Stats struct {
	TotalPaid         int64
	TotalPending      int64
	PaymentsThisMonth int64

	PayslipCount       int64
	UnpaidCount        int64
	PartiallyPaidCount int64
	PaidCount          int64
}

type AggregateFilter struct {
	PayRunID    string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

//go:generate mockgen -source=reconciliation_repo.go -destination=mock/reconciliation_repo_mock.go -package=mock
type Repository interface {
	Aggregate(ctx context.Context, companyID string, filter AggregateFilter) (Stats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Aggregate menghitung ringkasan dari ledger, read-only. Total paid diambil
// dari tabel payments (bukan field denormalisasi) supaya satu payment tidak
// pernah terhitung dua kali lintas window. Ledger kosong menghasilkan nol.
func (r *repository) Aggregate(
	ctx context.Context,
	companyID string,
	filter AggregateFilter,
) (Stats, error) {
	var stats Stats

	payments := r.db.WithContext(ctx).
		Table("payments p").
		Scopes(tenant.ScopeAliased("p", companyID)).
		Where("p.reversed_at IS NULL")
	if filter.PayRunID != "" {
		payments = payments.
			Joins("JOIN payslips ps ON ps.id = p.payslip_id").
			Where("ps.pay_run_id = ?", filter.PayRunID)
	}
	if filter.PeriodStart != nil {
		payments = payments.Where("p.paid_at >= ?", *filter.PeriodStart)
	}
	if filter.PeriodEnd != nil {
		payments = payments.Where("p.paid_at < ?", *filter.PeriodEnd)
	}

	row := struct {
		TotalPaid         int64
		PaymentsThisMonth int64
	}{}
	err := payments.
		Select(`
			COALESCE(SUM(p.amount), 0) AS total_paid,
			COUNT(*) FILTER (WHERE p.paid_at >= date_trunc('month', NOW())) AS payments_this_month
		`).
		Scan(&row).Error
	if err != nil {
		return Stats{}, err
	}
	stats.TotalPaid = row.TotalPaid
	stats.PaymentsThisMonth = row.PaymentsThisMonth

	payslips := r.db.WithContext(ctx).
		Table("payslips").
		Scopes(tenant.Scope(companyID))
	if filter.PayRunID != "" {
		payslips = payslips.Where("pay_run_id = ?", filter.PayRunID)
	}

	slipRow := struct {
		TotalPending       int64
		PayslipCount       int64
		UnpaidCount        int64
		PartiallyPaidCount int64
		PaidCount          int64
	}{}
	err = payslips.
		Select(`
			COALESCE(SUM(net_amount - amount_paid) FILTER (WHERE status <> 'PAID'), 0) AS total_pending,
			COUNT(*) AS payslip_count,
			COUNT(*) FILTER (WHERE status = 'UNPAID') AS unpaid_count,
			COUNT(*) FILTER (WHERE status = 'PARTIALLY_PAID') AS partially_paid_count,
			COUNT(*) FILTER (WHERE status = 'PAID') AS paid_count
		`).
		Scan(&slipRow).Error
	if err != nil {
		return Stats{}, err
	}
	stats.TotalPending = slipRow.TotalPending
	stats.PayslipCount = slipRow.PayslipCount
	stats.UnpaidCount = slipRow.UnpaidCount
	stats.PartiallyPaidCount = slipRow.PartiallyPaidCount
	stats.PaidCount = slipRow.PaidCount

	return stats, nil
}
