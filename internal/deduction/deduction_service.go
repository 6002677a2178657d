package deduction

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	deductionerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/deduction/errors"
)

// Calculator adalah satu-satunya kontrak yang dilihat generator payslip:
// total potongan untuk satu employee, dibaca dalam transaksi approval.
type Calculator interface {
	TotalFor(ctx context.Context, tx *sql.Tx, companyID, employeeID string) (int64, error)
}

//go:generate mockgen -source=deduction_service.go -destination=mock/deduction_service_mock.go -package=mock
type Service interface {
	Calculator
	Create(ctx context.Context, companyID string, req CreateDeductionRequest) (DeductionResponse, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]DeductionResponse, error)
	Deactivate(ctx context.Context, companyID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) TotalFor(ctx context.Context, tx *sql.Tx, companyID, employeeID string) (int64, error) {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	total, err := repo.SumActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		return 0, deductionerrors.ErrNegativeDeduction
	}
	return total, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDeductionRequest,
) (DeductionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidCompanyID
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DeductionResponse{}, deductionerrors.ErrInvalidEmployeeID
	}

	entry := &DeductionEntry{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Label:      req.Label,
		Amount:     req.Amount,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return DeductionResponse{}, err
	}

	return mapToResponse(*entry), nil
}

func (s *service) GetAllByEmployee(
	ctx context.Context,
	companyID, employeeID string,
) ([]DeductionResponse, error) {
	entries, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]DeductionResponse, len(entries))
	for i, entry := range entries {
		resp[i] = mapToResponse(entry)
	}
	return resp, nil
}

func (s *service) Deactivate(ctx context.Context, companyID, id string) error {
	return s.repo.Deactivate(ctx, companyID, id)
}

func mapToResponse(entry DeductionEntry) DeductionResponse {
	return DeductionResponse{
		ID:         entry.ID.String(),
		CompanyID:  entry.CompanyID.String(),
		EmployeeID: entry.EmployeeID.String(),
		Label:      entry.Label,
		Amount:     entry.Amount,
		IsActive:   entry.IsActive,
	}
}
