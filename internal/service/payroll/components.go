package payroll

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/softmint-it/lumorahr/internal/domain/payroll"
)

// ComponentResult is the evaluator output: ordered breakdown lines plus the
// totals the entry builder consumes.
type ComponentResult struct {
	Earnings          []payroll.BreakdownLine
	Deductions        []payroll.BreakdownLine
	ComponentEarnings decimal.Decimal
	TotalDeductions   decimal.Decimal
}

// EvaluateComponents resolves every assigned component into a monetary
// amount. Fixed components use the assignment override, falling back to the
// master default. Percentage components compute percent-of-basic rounded to
// two decimals, half up. Mandatory components apply even when unassigned; a
// mandatory component with no resolvable amount fails the whole evaluation.
func EvaluateComponents(basicSalary decimal.Decimal, assignments []payroll.ComponentAssignment, components map[string]payroll.SalaryComponent) (ComponentResult, error) {
	result := ComponentResult{}
	seen := make(map[string]bool, len(assignments))

	appendLine := func(comp payroll.SalaryComponent, amount decimal.Decimal) {
		line := payroll.BreakdownLine{
			ComponentID: comp.ID,
			Name:        comp.Name,
			Amount:      amount,
			IsTaxable:   comp.IsTaxable,
		}
		if comp.Type == payroll.ComponentTypeEarning {
			result.Earnings = append(result.Earnings, line)
			result.ComponentEarnings = round2(result.ComponentEarnings.Add(amount))
		} else {
			result.Deductions = append(result.Deductions, line)
			result.TotalDeductions = round2(result.TotalDeductions.Add(amount))
		}
	}

	for _, assignment := range assignments {
		comp, ok := components[assignment.ComponentID]
		if !ok {
			return ComponentResult{}, fmt.Errorf("%w: %s", payroll.ErrComponentNotFound, assignment.ComponentID)
		}
		if err := comp.Validate(); err != nil {
			return ComponentResult{}, fmt.Errorf("component %s: %w", comp.Name, err)
		}
		seen[comp.ID] = true

		amount, resolved := resolveAmount(basicSalary, comp, assignment.OverrideAmount)
		if !resolved {
			if comp.IsMandatory {
				return ComponentResult{}, fmt.Errorf("%w: %s", payroll.ErrMandatoryComponent, comp.Name)
			}
			continue
		}
		appendLine(comp, amount)
	}

	// Mandatory components bind even without an explicit assignment.
	unassigned := make([]payroll.SalaryComponent, 0)
	for _, comp := range components {
		if comp.IsMandatory && comp.IsActive && !seen[comp.ID] {
			unassigned = append(unassigned, comp)
		}
	}
	sort.Slice(unassigned, func(i, j int) bool { return unassigned[i].Name < unassigned[j].Name })
	for _, comp := range unassigned {
		if err := comp.Validate(); err != nil {
			return ComponentResult{}, fmt.Errorf("component %s: %w", comp.Name, err)
		}
		amount, resolved := resolveAmount(basicSalary, comp, nil)
		if !resolved {
			return ComponentResult{}, fmt.Errorf("%w: %s", payroll.ErrMandatoryComponent, comp.Name)
		}
		appendLine(comp, amount)
	}

	return result, nil
}

func resolveAmount(basicSalary decimal.Decimal, comp payroll.SalaryComponent, override *decimal.Decimal) (decimal.Decimal, bool) {
	switch comp.CalcType {
	case payroll.CalcTypeFixed:
		if override != nil {
			return round2(*override), true
		}
		if comp.DefaultAmount != nil {
			return round2(*comp.DefaultAmount), true
		}
		return decimal.Zero, false
	case payroll.CalcTypePercentage:
		return round2(basicSalary.Mul(*comp.PercentOfBasic).Div(hundred)), true
	default:
		return decimal.Zero, false
	}
}
