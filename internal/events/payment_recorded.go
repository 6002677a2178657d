package events

import "time"

const PaymentRecordedTopic = "payroll.payment.recorded.v1"

// PaymentRecordedEvent dipublish untuk pembayaran baru maupun reversal.
type PaymentRecordedEvent struct {
	EventType     string    `json:"event_type"`
	PaymentID     string    `json:"payment_id"`
	PayslipID     string    `json:"payslip_id"`
	CompanyID     string    `json:"company_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	PayslipStatus string    `json:"payslip_status"`
	Reversal      bool      `json:"reversal"`
	OccurredAt    time.Time `json:"occurred_at"`
}
