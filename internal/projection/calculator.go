// Package projection turns savings targets into required monthly contributions
// and monthly contributions into projected balances.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/service"
	"github.com/shopspring/decimal"
)

// TargetParams are the inputs for a target-based projection.
type TargetParams struct {
	Date                time.Time
	Risk                model.RiskTolerance
	Interest            model.InterestType
	TargetAmount        decimal.Decimal
	AnnualReturnPercent decimal.Decimal
}

// ContributionPlan is the result of a target-based projection.
type ContributionPlan struct {
	Date          time.Time
	Band          Band
	Risk          model.RiskTolerance
	TimeLeft      string
	MonthlyNeeded decimal.Decimal
	Months        int
}

// ContributionParams are the inputs for a contribution-based projection.
type ContributionParams struct {
	Date                time.Time
	Risk                model.RiskTolerance
	Interest            model.InterestType
	MonthlyContribution decimal.Decimal
	AnnualReturnPercent decimal.Decimal
}

// BalancePlan is the result of a contribution-based projection.
type BalancePlan struct {
	Date        time.Time
	Band        Band
	Risk        model.RiskTolerance
	TimeLeft    string
	FinalAmount decimal.Decimal
	Months      int
}

// Calculator runs projections against a risk band table and a clock.
type Calculator struct {
	clock service.Clock
	bands RiskBands
}

// NewCalculator creates a calculator. A nil bands table falls back to
// DefaultRiskBands and a nil clock to the system clock.
func NewCalculator(bands RiskBands, clock service.Clock) *Calculator {
	if bands == nil {
		bands = DefaultRiskBands()
	}
	if clock == nil {
		clock = service.SystemClock{}
	}
	return &Calculator{bands: bands, clock: clock}
}

// RequiredContribution computes the monthly deposit needed to reach
// TargetAmount by Date. With growth it uses the sinking-fund formula
// target*m/((1+m)^n-1) where m is the monthly rate.
func (c *Calculator) RequiredContribution(p TargetParams) (ContributionPlan, error) {
	if err := requirePositive("target amount", p.TargetAmount); err != nil {
		return ContributionPlan{}, err
	}
	if err := requireNonNegative("annual return", p.AnnualReturnPercent); err != nil {
		return ContributionPlan{}, err
	}
	delta, err := c.bands.Delta(p.Risk)
	if err != nil {
		return ContributionPlan{}, err
	}
	now := c.clock.Now()
	n, err := periods(now, p.Date)
	if err != nil {
		return ContributionPlan{}, err
	}

	periodsDec := decimal.NewFromInt(int64(n))
	var monthly decimal.Decimal
	if grows(p.AnnualReturnPercent, p.Interest) {
		m := MonthlyRate(p.AnnualReturnPercent)
		monthly = p.TargetAmount.Mul(m).Div(growthFactor(m, n).Sub(one))
	} else {
		monthly = p.TargetAmount.Div(periodsDec)
	}
	monthly = monthly.Round(2)

	return ContributionPlan{
		Date:          p.Date,
		Months:        n,
		TimeLeft:      FormatTimeLeft(now, p.Date),
		MonthlyNeeded: monthly,
		Risk:          p.Risk,
		Band:          ApplyBand(monthly, delta),
	}, nil
}

// ProjectedBalance computes the balance reached by depositing
// MonthlyContribution every month until Date, using the future value of an
// ordinary annuity when growth is assumed.
func (c *Calculator) ProjectedBalance(p ContributionParams) (BalancePlan, error) {
	if err := requirePositive("monthly contribution", p.MonthlyContribution); err != nil {
		return BalancePlan{}, err
	}
	if err := requireNonNegative("annual return", p.AnnualReturnPercent); err != nil {
		return BalancePlan{}, err
	}
	delta, err := c.bands.Delta(p.Risk)
	if err != nil {
		return BalancePlan{}, err
	}
	now := c.clock.Now()
	n, err := periods(now, p.Date)
	if err != nil {
		return BalancePlan{}, err
	}

	final := annuityValue(p.MonthlyContribution, p.AnnualReturnPercent, p.Interest, n).Round(2)

	return BalancePlan{
		Date:        p.Date,
		Months:      n,
		TimeLeft:    FormatTimeLeft(now, p.Date),
		FinalAmount: final,
		Risk:        p.Risk,
		Band:        ApplyBand(final, delta),
	}, nil
}

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}

// growthFactor returns (1+m)^n.
func growthFactor(m decimal.Decimal, n int) decimal.Decimal {
	return one.Add(m).Pow(decimal.NewFromInt(int64(n))).Round(18)
}

// annuityValue is the future value of n monthly payments of pmt.
func annuityValue(pmt, annualPercent decimal.Decimal, interest model.InterestType, n int) decimal.Decimal {
	if !grows(annualPercent, interest) {
		return pmt.Mul(decimal.NewFromInt(int64(n)))
	}
	m := MonthlyRate(annualPercent)
	return pmt.Mul(growthFactor(m, n).Sub(one)).Div(m)
}

func grows(annualPercent decimal.Decimal, interest model.InterestType) bool {
	return annualPercent.IsPositive() && interest != model.InterestSimple
}

func periods(now, date time.Time) (int, error) {
	if date.IsZero() {
		return 0, common.NewValidationError("target date", "is required")
	}
	n := MonthsBetween(now, date)
	if n <= 0 {
		return 0, common.NewValidationError("target date", "must be in the future")
	}
	return n, nil
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return common.NewValidationError(field, "must be greater than zero")
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return common.NewValidationError(field, "cannot be negative")
	}
	return nil
}

// ParseAmount reads a user-entered money amount, ignoring currency symbols,
// spaces and thousands separators, and rounds it to cents. Negative and
// non-numeric input is rejected, as is a non-zero amount below half a cent.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, common.NewValidationError(field, "is required")
	}
	if strings.Contains(s, "-") {
		return decimal.Zero, common.NewValidationError(field, "must be greater than zero")
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return decimal.Zero, common.NewValidationError(field, fmt.Sprintf("%q is not a number", s))
	}

	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, common.NewValidationError(field, fmt.Sprintf("%q is not a number", s))
	}

	rounded := v.Round(2)
	if rounded.IsZero() && !v.IsZero() {
		return decimal.Zero, common.NewValidationError(field, fmt.Sprintf("%q is less than one cent", s))
	}
	return rounded, nil
}

// ParsePercent reads a percentage such as "6" or "6.5%". Empty means zero.
func ParsePercent(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, common.NewValidationError(field, fmt.Sprintf("%q is not a number", s))
	}
	if v.IsNegative() {
		return decimal.Zero, common.NewValidationError(field, "cannot be negative")
	}
	return v, nil
}
