package employee

type EmployeeResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Position     string `json:"position,omitempty"`
	ContractType string `json:"contract_type"`
	DailyRate    int64  `json:"daily_rate"`
	FixedSalary  int64  `json:"fixed_salary"`
	HourlyRate   int64  `json:"hourly_rate"`
	IsActive     bool   `json:"is_active"`
}

type GetEmployeesFilterRequest struct {
	ContractType string `form:"contract_type" binding:"omitempty,oneof=DAILY FIXED HONORARIUM"`
	ActiveOnly   bool   `form:"active_only"`
}
