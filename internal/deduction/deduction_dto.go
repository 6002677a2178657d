package deduction

type CreateDeductionRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Label      string `json:"label" binding:"required,max=120"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
}

type DeductionResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Label      string `json:"label"`
	Amount     int64  `json:"amount"`
	IsActive   bool   `json:"is_active"`
}
