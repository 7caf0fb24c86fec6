package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRunStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, RunStatusDraft.CanTransitionTo(RunStatusProcessing))
	assert.True(t, RunStatusDraft.CanTransitionTo(RunStatusCancelled))
	assert.False(t, RunStatusDraft.CanTransitionTo(RunStatusCompleted))

	assert.True(t, RunStatusProcessing.CanTransitionTo(RunStatusCompleted))
	assert.True(t, RunStatusProcessing.CanTransitionTo(RunStatusCancelled))
	assert.False(t, RunStatusProcessing.CanTransitionTo(RunStatusDraft))

	assert.False(t, RunStatusCompleted.CanTransitionTo(RunStatusProcessing))
	assert.False(t, RunStatusCompleted.CanTransitionTo(RunStatusCancelled))
	assert.False(t, RunStatusCancelled.CanTransitionTo(RunStatusDraft))
}

func TestSalaryComponent_Validate(t *testing.T) {
	amount := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(5)
	negative := decimal.NewFromInt(-5)

	valid := SalaryComponent{Type: ComponentTypeEarning, CalcType: CalcTypeFixed, DefaultAmount: &amount}
	assert.NoError(t, valid.Validate())

	validPct := SalaryComponent{Type: ComponentTypeDeduction, CalcType: CalcTypePercentage, PercentOfBasic: &pct}
	assert.NoError(t, validPct.Validate())

	badType := SalaryComponent{Type: "bonus", CalcType: CalcTypeFixed}
	assert.ErrorIs(t, badType.Validate(), ErrInvalidComponentType)

	fixedWithPct := SalaryComponent{Type: ComponentTypeEarning, CalcType: CalcTypeFixed, PercentOfBasic: &pct}
	assert.ErrorIs(t, fixedWithPct.Validate(), ErrInvalidComponentShape)

	pctWithoutPct := SalaryComponent{Type: ComponentTypeEarning, CalcType: CalcTypePercentage}
	assert.ErrorIs(t, pctWithoutPct.Validate(), ErrInvalidComponentShape)

	pctWithAmount := SalaryComponent{Type: ComponentTypeEarning, CalcType: CalcTypePercentage, PercentOfBasic: &pct, DefaultAmount: &amount}
	assert.ErrorIs(t, pctWithAmount.Validate(), ErrInvalidComponentShape)

	negativePct := SalaryComponent{Type: ComponentTypeEarning, CalcType: CalcTypePercentage, PercentOfBasic: &negative}
	assert.ErrorIs(t, negativePct.Validate(), ErrInvalidComponentShape)
}

func TestPeriod_CalendarDays(t *testing.T) {
	june := Period{
		Start: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 30, june.CalendarDays())

	single := Period{Start: june.Start, End: june.Start}
	assert.Equal(t, 1, single.CalendarDays())
}

func TestPeriod_Contains(t *testing.T) {
	p := Period{
		Start: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.False(t, p.Contains(p.End.AddDate(0, 0, 1)))
	assert.False(t, p.Contains(p.Start.AddDate(0, 0, -1)))
}
