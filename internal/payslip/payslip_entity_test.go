package payslip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payslip"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid int64
		netAmount  int64
		want       string
	}{
		{"nothing paid", 0, 100000, payslip.StatusUnpaid},
		{"partial", 60000, 100000, payslip.StatusPartiallyPaid},
		{"one unit short", 99999, 100000, payslip.StatusPartiallyPaid},
		{"exact", 100000, 100000, payslip.StatusPaid},
		{"zero net starts unpaid", 0, 0, payslip.StatusUnpaid},
		{"negative paid treated as unpaid", -1, 100000, payslip.StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payslip.DeriveStatus(tt.amountPaid, tt.netAmount))
		})
	}
}

func TestPayslip_Remaining(t *testing.T) {
	p := payslip.Payslip{NetAmount: 100000, AmountPaid: 60000}
	assert.Equal(t, int64(40000), p.Remaining())

	p.AmountPaid = 100000
	assert.Equal(t, int64(0), p.Remaining())

	// Out-of-sync data never reports a negative balance.
	p.AmountPaid = 120000
	assert.Equal(t, int64(0), p.Remaining())
}
