package projection

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		target time.Time
		name   string
		want   int
	}{
		{name: "exactly twelve months", target: testNow.AddDate(1, 0, 0), want: 12},
		{name: "one day past twelve months rounds up", target: testNow.AddDate(1, 0, 1), want: 13},
		{name: "one hour ahead counts as a month", target: testNow.Add(time.Hour), want: 1},
		{name: "earlier day of the next month", target: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "later day of the next month", target: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC), want: 2},
		{name: "same instant", target: testNow, want: 0},
		{name: "past", target: testNow.AddDate(0, -3, 0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(testNow, tt.target))
		})
	}
}

func TestMonthsBetween_OtherLocation(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)
	target := testNow.AddDate(0, 6, 0).In(loc)
	assert.Equal(t, 6, MonthsBetween(testNow, target))
}

func TestFormatTimeLeft(t *testing.T) {
	tests := []struct {
		target time.Time
		want   string
	}{
		{target: testNow.AddDate(0, 0, 12), want: "12 d"},
		{target: testNow.AddDate(0, 0, 30), want: "30 d"},
		{target: testNow.AddDate(0, 1, 0), want: "1 mo"},
		{target: testNow.AddDate(0, 2, 5), want: "2 mo 5 d"},
		{target: testNow.AddDate(1, 0, 0), want: "12 mo"},
		{target: testNow.Add(2 * time.Hour), want: "1 d"},
		{target: testNow.Add(-time.Hour), want: "0 d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeLeft(testNow, tt.target))
		})
	}
}

// The months shown never disagree with the deposit count.
func TestFormatTimeLeft_MatchesMonthsBetween(t *testing.T) {
	tests := []struct {
		target time.Time
		months int
		left   string
	}{
		{target: testNow.AddDate(1, 0, 0), months: 12, left: "12 mo"},
		{target: testNow.AddDate(1, 0, 5), months: 13, left: "12 mo 5 d"},
		{target: testNow.AddDate(0, 0, 365), months: 12, left: "12 mo"},
	}

	for _, tt := range tests {
		t.Run(tt.left, func(t *testing.T) {
			assert.Equal(t, tt.months, MonthsBetween(testNow, tt.target))
			assert.Equal(t, tt.left, FormatTimeLeft(testNow, tt.target))
		})
	}
}

func TestRetirement(t *testing.T) {
	plan, err := Retirement(RetirementParams{
		CurrentAge:          30,
		RetireAge:           50,
		CurrentSavings:      dec("10000"),
		MonthlyContribution: dec("500"),
		AnnualReturnPercent: dec("6"),
	})
	require.NoError(t, err)
	assert.Equal(t, 240, plan.Months)
	assert.True(t, dec("33102.04").Equal(plan.FromSavings), "got %s", plan.FromSavings)
	assert.True(t, dec("231020.45").Equal(plan.FromContributions), "got %s", plan.FromContributions)
	assert.True(t, dec("264122.49").Equal(plan.FutureValue), "got %s", plan.FutureValue)

	plan, err = Retirement(RetirementParams{
		CurrentAge:          60,
		RetireAge:           65,
		CurrentSavings:      dec("1000"),
		MonthlyContribution: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, dec("7000").Equal(plan.FutureValue), "got %s", plan.FutureValue)
}

func TestRetirement_Validation(t *testing.T) {
	base := RetirementParams{CurrentAge: 30, RetireAge: 60, CurrentSavings: decimal.Zero, MonthlyContribution: dec("100")}

	cases := map[string]func(p *RetirementParams){
		"zero age":              func(p *RetirementParams) { p.CurrentAge = 0 },
		"retire before now":     func(p *RetirementParams) { p.RetireAge = 25 },
		"negative savings":      func(p *RetirementParams) { p.CurrentSavings = dec("-1") },
		"negative contribution": func(p *RetirementParams) { p.MonthlyContribution = dec("-1") },
		"negative return":       func(p *RetirementParams) { p.AnnualReturnPercent = dec("-1") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := base
			mutate(&p)
			_, err := Retirement(p)
			assert.Error(t, err)
		})
	}
}
