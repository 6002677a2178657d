package reconciliation

type GetStatsFilterRequest struct {
	PayRunID    string `form:"pay_run_id" binding:"omitempty,uuid"`
	PeriodStart string `form:"period_start" binding:"omitempty,datetime=2006-01-02"`
	PeriodEnd   string `form:"period_end" binding:"omitempty,datetime=2006-01-02"`
}

type StatsResponse struct {
	CompanyID         string `json:"company_id"`
	TotalPaid         int64  `json:"total_paid"`
	TotalPending      int64  `json:"total_pending"`
	PaymentsThisMonth int64  `json:"payments_this_month"`

	PayslipCount       int64 `json:"payslip_count"`
	UnpaidCount        int64 `json:"unpaid_count"`
	PartiallyPaidCount int64 `json:"partially_paid_count"`
	PaidCount          int64 `json:"paid_count"`
}
