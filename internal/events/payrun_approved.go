package events

import "time"

const PayRunApprovedTopic = "payroll.payrun.approved.v1"

type PayRunApprovedEvent struct {
	EventType    string    `json:"event_type"`
	PayRunID     string    `json:"pay_run_id"`
	CompanyID    string    `json:"company_id"`
	ApprovedBy   string    `json:"approved_by"`
	PayslipCount int       `json:"payslip_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
