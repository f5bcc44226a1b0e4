package projection

import (
	"fmt"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// RiskBands maps each risk tolerance to the fractional half-width of the
// range shown around a point estimate (0.025 means ±2.5%).
type RiskBands map[model.RiskTolerance]decimal.Decimal

// DefaultRiskBands is the canonical table: 1.5%, 2.5% and 6%.
func DefaultRiskBands() RiskBands {
	return RiskBands{
		model.RiskConservative: decimal.RequireFromString("0.015"),
		model.RiskModerate:     decimal.RequireFromString("0.025"),
		model.RiskHigh:         decimal.RequireFromString("0.06"),
	}
}

// RiskBandsFromPercent builds a table from percentages, e.g. 2.5 for ±2.5%.
func RiskBandsFromPercent(conservative, moderate, high float64) RiskBands {
	return RiskBands{
		model.RiskConservative: decimal.NewFromFloat(conservative).Div(hundred),
		model.RiskModerate:     decimal.NewFromFloat(moderate).Div(hundred),
		model.RiskHigh:         decimal.NewFromFloat(high).Div(hundred),
	}
}

// Validate requires every tolerance to be present with a delta in [0, 1).
func (b RiskBands) Validate() error {
	for _, r := range model.RiskTolerances {
		d, ok := b[r]
		if !ok {
			return fmt.Errorf("%w: missing risk band for %s", common.ErrInvalidConfig, r)
		}
		if d.IsNegative() || d.GreaterThanOrEqual(one) {
			return fmt.Errorf("%w: risk band for %s must be in [0%%, 100%%), got %s",
				common.ErrInvalidConfig, r, d.Mul(hundred).String())
		}
	}
	return nil
}

// Delta returns the band half-width for r.
func (b RiskBands) Delta(r model.RiskTolerance) (decimal.Decimal, error) {
	d, ok := b[r]
	if !ok {
		return decimal.Zero, common.NewValidationError("risk tolerance", fmt.Sprintf("unknown value %q", r))
	}
	return d, nil
}

// Band is a symmetric range around a point estimate.
type Band struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ApplyBand returns [x*(1-delta), x*(1+delta)], each rounded to cents.
func ApplyBand(x, delta decimal.Decimal) Band {
	return Band{
		Min: x.Mul(one.Sub(delta)).Round(2),
		Max: x.Mul(one.Add(delta)).Round(2),
	}
}
