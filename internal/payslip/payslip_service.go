package payslip

import (
	"context"
	"errors"

	"gorm.io/gorm"

	paysliperrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip/errors"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string, filter GetPayslipsFilterRequest) ([]PayslipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
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
	filter GetPayslipsFilterRequest,
) ([]PayslipResponse, error) {
	payslips, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(payslips))
	for i, p := range payslips {
		resp[i] = MapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}

	return MapToResponse(*p), nil
}

// MapToResponse diexport karena package payment juga mengembalikan payslip
// ter-update setelah pembayaran.
func MapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:              p.ID.String(),
		CompanyID:       p.CompanyID.String(),
		PayRunID:        p.PayRunID.String(),
		EmployeeID:      p.EmployeeID.String(),
		GrossAmount:     p.GrossAmount,
		TotalDeductions: p.TotalDeductions,
		NetAmount:       p.NetAmount,
		AmountPaid:      p.AmountPaid,
		Remaining:       p.Remaining(),
		Status:          p.Status,
	}
}
