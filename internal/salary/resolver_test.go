package salary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/employee"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/salary"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
)

func TestResolver_Resolve(t *testing.T) {
	r := salary.NewResolver()

	tests := []struct {
		name    string
		emp     employee.Employee
		want    int64
		wantErr bool
	}{
		{
			name: "daily uses daily rate",
			emp:  employee.Employee{ID: uuid.New(), ContractType: employee.ContractDaily, DailyRate: 150000},
			want: 150000,
		},
		{
			name: "fixed uses fixed salary",
			emp:  employee.Employee{ID: uuid.New(), ContractType: employee.ContractFixed, FixedSalary: 7500000},
			want: 7500000,
		},
		{
			name: "honorarium uses hourly rate as flat amount",
			emp:  employee.Employee{ID: uuid.New(), ContractType: employee.ContractHonorarium, HourlyRate: 2000000},
			want: 2000000,
		},
		{
			name:    "daily with zero rate is a data error",
			emp:     employee.Employee{ID: uuid.New(), ContractType: employee.ContractDaily},
			wantErr: true,
		},
		{
			name: "fixed ignores other rate fields",
			emp: employee.Employee{
				ID:           uuid.New(),
				ContractType: employee.ContractFixed,
				DailyRate:    99999,
				HourlyRate:   88888,
			},
			wantErr: true,
		},
		{
			name:    "unknown contract type rejected",
			emp:     employee.Employee{ID: uuid.New(), ContractType: "FREELANCE", DailyRate: 100000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.emp)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ErrorsCarryEmployeeContext(t *testing.T) {
	r := salary.NewResolver()
	empID := uuid.New()

	_, err := r.Resolve(employee.Employee{ID: empID, ContractType: employee.ContractDaily})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, empID.String(), details["employee_id"])
	assert.Equal(t, "daily_rate", details["rate_field"])
}
