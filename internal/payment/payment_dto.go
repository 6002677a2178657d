package payment

type ApplyPaymentRequest struct {
	Amount int64   `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=CASH BANK_TRANSFER EWALLET CHEQUE"`
	PaidAt *string `json:"paid_at"`
	Notes  *string `json:"notes"`
}

type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type PaymentResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	PayslipID      string  `json:"payslip_id"`
	Amount         int64   `json:"amount"`
	Method         string  `json:"method"`
	PaidAt         string  `json:"paid_at"`
	Notes          *string `json:"notes,omitempty"`
	Reversed       bool    `json:"reversed"`
	ReversedAt     *string `json:"reversed_at,omitempty"`
	ReversalReason *string `json:"reversal_reason,omitempty"`

	// Keadaan payslip setelah operasi, supaya UI tidak perlu menghitung
	// sisa tagihan sendiri.
	PayslipStatus string `json:"payslip_status,omitempty"`
	Remaining     int64  `json:"remaining"`
}

type RemainingResponse struct {
	PayslipID  string `json:"payslip_id"`
	NetAmount  int64  `json:"net_amount"`
	AmountPaid int64  `json:"amount_paid"`
	Remaining  int64  `json:"remaining"`
	Status     string `json:"status"`
}
