package employee

import (
	"context"

	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAllByCompany(ctx context.Context, companyID string, filter GetEmployeesFilterRequest) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter GetEmployeesFilterRequest) ([]Employee, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC")

	if filter.ContractType != "" {
		db = db.Where("contract_type = ?", filter.ContractType)
	}
	if filter.ActiveOnly {
		db = db.Where("is_active = TRUE")
	}

	var employees []Employee
	err := db.Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindActiveByIDs mengembalikan employee aktif milik company; urutan hasil
// mengikuti database, pemanggil yang peduli urutan input harus menyusun ulang.
func (r *repository) FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Where("is_active = TRUE").
		Find(&employees).Error
	return employees, err
}
