package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softmint-it/lumorahr/internal/pkg/validator"
)

func TestCreateRunRequest_Validate(t *testing.T) {
	valid := CreateRunRequest{
		PeriodStart: "2026-06-01",
		PeriodEnd:   "2026-06-30",
		PayDate:     "2026-07-01",
		Frequency:   "monthly",
	}
	assert.NoError(t, valid.Validate())

	endBeforeStart := valid
	endBeforeStart.PeriodEnd = "2026-05-31"
	err := endBeforeStart.Validate()
	require.Error(t, err)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "period_end")

	badFrequency := valid
	badFrequency.Frequency = "yearly"
	require.Error(t, badFrequency.Validate())

	badDate := valid
	badDate.PeriodStart = "01/06/2026"
	require.Error(t, badDate.Validate())
}

func TestCreateComponentRequest_Validate(t *testing.T) {
	amount := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(5)

	fixed := CreateComponentRequest{Name: "Meal Allowance", Type: "earning", CalcType: "fixed", DefaultAmount: &amount}
	assert.NoError(t, fixed.Validate())

	percentage := CreateComponentRequest{Name: "Pension", Type: "deduction", CalcType: "percentage", PercentOfBasic: &pct}
	assert.NoError(t, percentage.Validate())

	missingName := CreateComponentRequest{Type: "earning", CalcType: "fixed"}
	require.Error(t, missingName.Validate())

	fixedWithPct := CreateComponentRequest{Name: "X", Type: "earning", CalcType: "fixed", PercentOfBasic: &pct}
	require.Error(t, fixedWithPct.Validate())

	pctWithoutPct := CreateComponentRequest{Name: "X", Type: "earning", CalcType: "percentage"}
	require.Error(t, pctWithoutPct.Validate())

	badCalc := CreateComponentRequest{Name: "X", Type: "earning", CalcType: "hybrid"}
	require.Error(t, badCalc.Validate())
}
