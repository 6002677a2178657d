package payrun

type CreatePayRunRequest struct {
	Title       string   `json:"title" binding:"required,max=150"`
	PeriodStart string   `json:"period_start" binding:"required"`
	PeriodEnd   string   `json:"period_end" binding:"required"`
	EmployeeIDs []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
}

type UpdatePayRunRequest struct {
	Title       string   `json:"title" binding:"required,max=150"`
	PeriodStart string   `json:"period_start" binding:"required"`
	PeriodEnd   string   `json:"period_end" binding:"required"`
	EmployeeIDs []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
}

type GetPayRunsFilterRequest struct {
	Status          string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED CLOSED"`
	IncludeArchived bool   `form:"include_archived"`
}

type PayRunResponse struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	RunNumber   string   `json:"run_number"`
	Title       string   `json:"title"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	Status      string   `json:"status"`
	EmployeeIDs []string `json:"employee_ids"`
	CreatedBy   string   `json:"created_by"`
	ApprovedBy  *string  `json:"approved_by,omitempty"`
	ApprovedAt  *string  `json:"approved_at,omitempty"`
	ClosedAt    *string  `json:"closed_at,omitempty"`
	ArchivedAt  *string  `json:"archived_at,omitempty"`
}
