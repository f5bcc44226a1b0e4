package projection

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func testCalculator() *Calculator {
	return NewCalculator(DefaultRiskBands(), service.FixedClock{T: testNow})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRequiredContribution(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		rate        string
		risk        model.RiskTolerance
		interest    model.InterestType
		wantMonthly string
		wantMin     string
		wantMax     string
		months      int
		wantMonths  int
	}{
		{
			name:        "no growth over twelve months",
			target:      "12000",
			rate:        "0",
			risk:        model.RiskModerate,
			months:      12,
			wantMonths:  12,
			wantMonthly: "1000",
			wantMin:     "975",
			wantMax:     "1025",
		},
		{
			name:        "compound growth at six percent",
			target:      "10000",
			rate:        "6",
			risk:        model.RiskModerate,
			months:      24,
			wantMonths:  24,
			wantMonthly: "393.21",
			wantMin:     "383.38",
			wantMax:     "403.04",
		},
		{
			name:        "simple interest ignores the return",
			target:      "12000",
			rate:        "6",
			risk:        model.RiskConservative,
			interest:    model.InterestSimple,
			months:      12,
			wantMonths:  12,
			wantMonthly: "1000",
			wantMin:     "985",
			wantMax:     "1015",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := testCalculator().RequiredContribution(TargetParams{
				TargetAmount:        dec(tt.target),
				Date:                testNow.AddDate(0, tt.months, 0),
				AnnualReturnPercent: dec(tt.rate),
				Risk:                tt.risk,
				Interest:            tt.interest,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonths, plan.Months)
			assert.True(t, dec(tt.wantMonthly).Equal(plan.MonthlyNeeded), "monthly: got %s", plan.MonthlyNeeded)
			assert.True(t, dec(tt.wantMin).Equal(plan.Band.Min), "min: got %s", plan.Band.Min)
			assert.True(t, dec(tt.wantMax).Equal(plan.Band.Max), "max: got %s", plan.Band.Max)
		})
	}
}

func TestRequiredContribution_Validation(t *testing.T) {
	calc := testCalculator()
	future := testNow.AddDate(0, 6, 0)

	tests := []struct {
		name   string
		params TargetParams
	}{
		{"zero target", TargetParams{TargetAmount: decimal.Zero, Date: future, Risk: model.RiskModerate}},
		{"negative target", TargetParams{TargetAmount: dec("-5"), Date: future, Risk: model.RiskModerate}},
		{"missing date", TargetParams{TargetAmount: dec("100"), Risk: model.RiskModerate}},
		{"date in the past", TargetParams{TargetAmount: dec("100"), Date: testNow.AddDate(0, -1, 0), Risk: model.RiskModerate}},
		{"date is now", TargetParams{TargetAmount: dec("100"), Date: testNow, Risk: model.RiskModerate}},
		{"negative return", TargetParams{TargetAmount: dec("100"), Date: future, AnnualReturnPercent: dec("-1"), Risk: model.RiskModerate}},
		{"unknown risk", TargetParams{TargetAmount: dec("100"), Date: future, Risk: "Reckless"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.RequiredContribution(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation), "expected validation error, got %v", err)
		})
	}
}

func TestProjectedBalance(t *testing.T) {
	calc := testCalculator()

	plan, err := calc.ProjectedBalance(ContributionParams{
		MonthlyContribution: dec("500"),
		Date:                testNow.AddDate(0, 12, 0),
		Risk:                model.RiskHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, plan.Months)
	assert.True(t, dec("6000").Equal(plan.FinalAmount), "got %s", plan.FinalAmount)
	assert.True(t, dec("5640").Equal(plan.Band.Min), "got %s", plan.Band.Min)
	assert.True(t, dec("6360").Equal(plan.Band.Max), "got %s", plan.Band.Max)

	plan, err = calc.ProjectedBalance(ContributionParams{
		MonthlyContribution: dec("500"),
		Date:                testNow.AddDate(0, 12, 0),
		AnnualReturnPercent: dec("6"),
		Risk:                model.RiskModerate,
	})
	require.NoError(t, err)
	assert.True(t, dec("6167.78").Equal(plan.FinalAmount), "got %s", plan.FinalAmount)

	_, err = calc.ProjectedBalance(ContributionParams{
		MonthlyContribution: decimal.Zero,
		Date:                testNow.AddDate(0, 12, 0),
		Risk:                model.RiskModerate,
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestZeroReturnAmortizesEvenly(t *testing.T) {
	calc := testCalculator()
	for _, target := range []string{"1", "99.99", "1234.56", "50000", "1000000"} {
		for _, months := range []int{1, 5, 12, 37, 120} {
			plan, err := calc.RequiredContribution(TargetParams{
				TargetAmount: dec(target),
				Date:         testNow.AddDate(0, months, 0),
				Risk:         model.RiskModerate,
			})
			require.NoError(t, err)

			total := plan.MonthlyNeeded.Mul(decimal.NewFromInt(int64(plan.Months)))
			tolerance := dec("0.005").Mul(decimal.NewFromInt(int64(plan.Months)))
			assert.True(t, total.Sub(dec(target)).Abs().LessThanOrEqual(tolerance),
				"target %s over %d months: %s * %d = %s", target, months, plan.MonthlyNeeded, plan.Months, total)
		}
	}
}

func TestTargetAndContributionModesAreInverses(t *testing.T) {
	calc := testCalculator()
	target := dec("10000")

	for _, rate := range []string{"1", "3.5", "6", "12"} {
		for _, months := range []int{1, 6, 24, 120} {
			date := testNow.AddDate(0, months, 0)
			plan, err := calc.RequiredContribution(TargetParams{
				TargetAmount:        target,
				Date:                date,
				AnnualReturnPercent: dec(rate),
				Risk:                model.RiskModerate,
			})
			require.NoError(t, err)

			balance, err := calc.ProjectedBalance(ContributionParams{
				MonthlyContribution: plan.MonthlyNeeded,
				Date:                date,
				AnnualReturnPercent: dec(rate),
				Risk:                model.RiskModerate,
			})
			require.NoError(t, err)

			// Rounding the deposit to cents moves the balance by at most
			// half a cent per unit of the annuity factor.
			m, _ := MonthlyRate(dec(rate)).Float64()
			factor := (math.Pow(1+m, float64(months)) - 1) / m
			tolerance := decimal.NewFromFloat(0.005*factor + 0.01)
			assert.True(t, balance.FinalAmount.Sub(target).Abs().LessThanOrEqual(tolerance),
				"rate %s months %d: got %s", rate, months, balance.FinalAmount)
		}
	}
}

func TestApplyBandIsSymmetric(t *testing.T) {
	for _, x := range []string{"0.01", "1", "393.21", "1000", "98765.43"} {
		for _, r := range model.RiskTolerances {
			delta := DefaultRiskBands()[r]
			band := ApplyBand(dec(x), delta)
			up := band.Max.Sub(dec(x))
			down := dec(x).Sub(band.Min)
			assert.True(t, up.Sub(down).Abs().LessThanOrEqual(dec("0.01")),
				"x=%s risk=%s band=[%s,%s]", x, r, band.Min, band.Max)
		}
	}
}

func TestRiskBands(t *testing.T) {
	require.NoError(t, DefaultRiskBands().Validate())

	bands := RiskBandsFromPercent(0.5, 2, 4)
	require.NoError(t, bands.Validate())
	assert.True(t, dec("0.005").Equal(bands[model.RiskConservative]))
	assert.True(t, dec("0.04").Equal(bands[model.RiskHigh]))

	assert.ErrorIs(t, RiskBandsFromPercent(1, 2, 100).Validate(), common.ErrInvalidConfig)
	assert.ErrorIs(t, RiskBandsFromPercent(-1, 2, 3).Validate(), common.ErrInvalidConfig)
	assert.ErrorIs(t, RiskBands{model.RiskModerate: dec("0.01")}.Validate(), common.ErrInvalidConfig)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1000", want: "1000"},
		{input: "1,250.50", want: "1250.5"},
		{input: "﷼ 5000", want: "5000"},
		{input: "$12.34", want: "12.34"},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "-20", wantErr: true},
		{input: "1.2.3", wantErr: true},
		{input: "12.345", want: "12.35"},
		{input: "12.344", want: "12.34"},
		{input: "0.005", want: "0.01"},
		{input: "0", want: "0"},
		{input: "0.001", wantErr: true},
		{input: "0.004", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount("amount", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParsePercent(t *testing.T) {
	v, err := ParsePercent("return", "6.5%")
	require.NoError(t, err)
	assert.True(t, dec("6.5").Equal(v))

	v, err = ParsePercent("return", "")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = ParsePercent("return", "-2")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = ParsePercent("return", "six")
	assert.ErrorIs(t, err, common.ErrValidation)
}
