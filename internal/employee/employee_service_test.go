package employee_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	employeeerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee/errors"
)

type fakeEmployeeRepository struct {
	findAllByCompanyFn   func(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindActiveByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func TestEmployeeService_GetAll_PassesFilter(t *testing.T) {
	companyID := uuid.NewString()

	repo := &fakeEmployeeRepository{
		findAllByCompanyFn: func(ctx context.Context, gotCompany string, filter employee.GetEmployeesFilterRequest) ([]employee.Employee, error) {
			assert.Equal(t, companyID, gotCompany)
			assert.Equal(t, employee.ContractDaily, filter.ContractType)
			assert.True(t, filter.ActiveOnly)
			return []employee.Employee{
				{
					ID:           uuid.New(),
					CompanyID:    uuid.MustParse(companyID),
					FullName:     "Awa Diop",
					ContractType: employee.ContractDaily,
					DailyRate:    15_000,
					IsActive:     true,
				},
			}, nil
		},
	}

	svc := employee.NewService(repo)

	resp, err := svc.GetAll(context.Background(), companyID, employee.GetEmployeesFilterRequest{
		ContractType: employee.ContractDaily,
		ActiveOnly:   true,
	})

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Awa Diop", resp[0].FullName)
	assert.Equal(t, int64(15_000), resp[0].DailyRate)
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(repo)

	_, err := svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
