package payrun

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

//go:generate mockgen -source=payrun_repo.go -destination=mock/payrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, run *PayRun) error
	FindAllByCompany(ctx context.Context, companyID string, filter GetPayRunsFilterRequest) ([]PayRun, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayRun, error)
	FindByIDForUpdate(ctx context.Context, companyID string, id string) (*PayRun, error)
	UpdateDraftFields(ctx context.Context, run *PayRun) error
	MarkApproved(ctx context.Context, id string, approvedBy string) (bool, error)
	MarkClosed(ctx context.Context, id string) (bool, error)
	MarkArchived(ctx context.Context, id string) (bool, error)
	DeleteDraft(ctx context.Context, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, run *PayRun) error {
	if r.tx == nil {
		return r.db.WithContext(ctx).Create(run).Error
	}

	runQuery := `
INSERT INTO pay_runs (
	id, company_id, run_number, title, period_start, period_end,
	status, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`
	_, err := r.tx.ExecContext(ctx, runQuery,
		run.ID, run.CompanyID, run.RunNumber, run.Title,
		run.PeriodStart, run.PeriodEnd, run.Status, run.CreatedBy,
	)
	if err != nil {
		return err
	}

	return r.insertMembers(ctx, run)
}

func (r *repository) insertMembers(ctx context.Context, run *PayRun) error {
	memberQuery := `
INSERT INTO pay_run_employees (id, pay_run_id, employee_id, position, created_at)
VALUES ($1, $2, $3, $4, NOW())
`
	for _, m := range run.Employees {
		if _, err := r.tx.ExecContext(ctx, memberQuery, m.ID, m.PayRunID, m.EmployeeID, m.Position); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter GetPayRunsFilterRequest) ([]PayRun, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("period_start DESC")

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if !filter.IncludeArchived {
		db = db.Where("archived_at IS NULL")
	}

	var runs []PayRun
	err := db.Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayRun, error) {
	var run PayRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindByIDForUpdate mengunci baris pay run untuk durasi transisi status.
// Dua approval konkuren akan antre di lock ini; yang kedua melihat status
// sudah APPROVED dan ditolak, bukan generate ganda.
func (r *repository) FindByIDForUpdate(ctx context.Context, companyID string, id string) (*PayRun, error) {
	if r.tx == nil {
		return nil, sql.ErrTxDone
	}

	runQuery := `
SELECT id, company_id, run_number, title, period_start, period_end,
	status, created_by, approved_by, approved_at, closed_at, archived_at,
	created_at, updated_at
FROM pay_runs
WHERE id = $1 AND company_id = $2
FOR UPDATE
`

	var run PayRun
	err := r.tx.QueryRowContext(ctx, runQuery, id, companyID).Scan(
		&run.ID, &run.CompanyID, &run.RunNumber, &run.Title,
		&run.PeriodStart, &run.PeriodEnd, &run.Status, &run.CreatedBy,
		&run.ApprovedBy, &run.ApprovedAt, &run.ClosedAt, &run.ArchivedAt,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	memberQuery := `
SELECT id, pay_run_id, employee_id, position, created_at
FROM pay_run_employees
WHERE pay_run_id = $1
ORDER BY position ASC
`
	rows, err := r.tx.QueryContext(ctx, memberQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m PayRunEmployee
		if err := rows.Scan(&m.ID, &m.PayRunID, &m.EmployeeID, &m.Position, &m.CreatedAt); err != nil {
			return nil, err
		}
		run.Employees = append(run.Employees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// UpdateDraftFields mengganti field yang masih boleh berubah selama DRAFT,
// termasuk menyusun ulang keanggotaan. Pemanggil wajib sudah memastikan
// status DRAFT di transaksi yang sama.
func (r *repository) UpdateDraftFields(ctx context.Context, run *PayRun) error {
	if r.tx == nil {
		return sql.ErrTxDone
	}

	runQuery := `
UPDATE pay_runs
SET title = $2, period_start = $3, period_end = $4, updated_at = NOW()
WHERE id = $1
`
	if _, err := r.tx.ExecContext(ctx, runQuery, run.ID, run.Title, run.PeriodStart, run.PeriodEnd); err != nil {
		return err
	}

	if _, err := r.tx.ExecContext(ctx, `DELETE FROM pay_run_employees WHERE pay_run_id = $1`, run.ID); err != nil {
		return err
	}

	return r.insertMembers(ctx, run)
}

func (r *repository) MarkApproved(ctx context.Context, id string, approvedBy string) (bool, error) {
	query := `
UPDATE pay_runs
SET status = $2, approved_by = $3, approved_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = $4
`
	return r.conditionalUpdate(ctx, query, id, StatusApproved, approvedBy, StatusDraft)
}

func (r *repository) MarkClosed(ctx context.Context, id string) (bool, error) {
	query := `
UPDATE pay_runs
SET status = $2, closed_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = $3
`
	return r.conditionalUpdate(ctx, query, id, StatusClosed, StatusApproved)
}

func (r *repository) MarkArchived(ctx context.Context, id string) (bool, error) {
	query := `
UPDATE pay_runs
SET archived_at = NOW(), updated_at = NOW()
WHERE id = $1 AND status = $2 AND archived_at IS NULL
`
	return r.conditionalUpdate(ctx, query, id, StatusClosed)
}

func (r *repository) DeleteDraft(ctx context.Context, id string) (bool, error) {
	if r.tx == nil {
		return false, sql.ErrTxDone
	}

	if _, err := r.tx.ExecContext(ctx, `DELETE FROM pay_run_employees WHERE pay_run_id = $1`, id); err != nil {
		return false, err
	}

	res, err := r.tx.ExecContext(ctx, `DELETE FROM pay_runs WHERE id = $1 AND status = $2`, id, StatusDraft)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// conditionalUpdate mengembalikan false bila guard status di WHERE tidak
// terpenuhi: caller yang memutuskan error state mana yang berlaku.
func (r *repository) conditionalUpdate(ctx context.Context, query string, args ...any) (bool, error) {
	var res sql.Result
	var err error

	if r.tx != nil {
		res, err = r.tx.ExecContext(ctx, query, args...)
	} else {
		db := r.db.WithContext(ctx).Exec(query, args...)
		return db.RowsAffected > 0, db.Error
	}
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
