package payslip

type PayslipResponse struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	PayRunID        string `json:"pay_run_id"`
	EmployeeID      string `json:"employee_id"`
	GrossAmount     int64  `json:"gross_amount"`
	TotalDeductions int64  `json:"total_deductions"`
	NetAmount       int64  `json:"net_amount"`
	AmountPaid      int64  `json:"amount_paid"`
	Remaining       int64  `json:"remaining"`
	Status          string `json:"status"`
}

type GetPayslipsFilterRequest struct {
	PayRunID string `form:"pay_run_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=UNPAID PARTIALLY_PAID PAID"`
}
