package projection

import (
	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
)

// RetirementParams are the inputs for the standalone retirement projection.
type RetirementParams struct {
	CurrentSavings      decimal.Decimal
	MonthlyContribution decimal.Decimal
	AnnualReturnPercent decimal.Decimal
	CurrentAge          int
	RetireAge           int
}

// RetirementPlan splits the projected balance at retirement into what the
// current savings grow to and what the contributions add.
type RetirementPlan struct {
	FromSavings       decimal.Decimal
	FromContributions decimal.Decimal
	FutureValue       decimal.Decimal
	Months            int
}

// Retirement compounds current savings monthly until retirement and adds the
// future value of the monthly contributions over the same periods.
func Retirement(p RetirementParams) (RetirementPlan, error) {
	if p.CurrentAge <= 0 {
		return RetirementPlan{}, common.NewValidationError("current age", "must be greater than zero")
	}
	if p.RetireAge <= p.CurrentAge {
		return RetirementPlan{}, common.NewValidationError("retirement age", "must be after the current age")
	}
	if err := requireNonNegative("current savings", p.CurrentSavings); err != nil {
		return RetirementPlan{}, err
	}
	if err := requireNonNegative("monthly contribution", p.MonthlyContribution); err != nil {
		return RetirementPlan{}, err
	}
	if err := requireNonNegative("annual return", p.AnnualReturnPercent); err != nil {
		return RetirementPlan{}, err
	}

	n := (p.RetireAge - p.CurrentAge) * 12

	fromSavings := p.CurrentSavings
	if p.AnnualReturnPercent.IsPositive() {
		fromSavings = p.CurrentSavings.Mul(growthFactor(MonthlyRate(p.AnnualReturnPercent), n))
	}
	fromContributions := annuityValue(p.MonthlyContribution, p.AnnualReturnPercent, model.InterestCompound, n)

	return RetirementPlan{
		Months:            n,
		FromSavings:       fromSavings.Round(2),
		FromContributions: fromContributions.Round(2),
		FutureValue:       fromSavings.Add(fromContributions).Round(2),
	}, nil
}
