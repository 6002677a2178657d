package employee

import (
	"context"
	"errors"

	"gorm.io/gorm"

	employeeerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee/errors"
)

// Direktori employee bersifat read-only di core ini: CRUD-nya milik sistem HR
// lain, core payroll hanya butuh lookup contract type + rate.

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string, filter GetEmployeesFilterRequest) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetEmployeesFilterRequest,
) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           emp.ID.String(),
		CompanyID:    emp.CompanyID.String(),
		FullName:     emp.FullName,
		Email:        emp.Email,
		Position:     emp.Position,
		ContractType: emp.ContractType,
		DailyRate:    emp.DailyRate,
		FixedSalary:  emp.FixedSalary,
		HourlyRate:   emp.HourlyRate,
		IsActive:     emp.IsActive,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = mapToResponse(emp)
	}
	return resp
}
