package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/shopspring/decimal"
)

// DateLayout is how dates are shown and parsed on the command line.
const DateLayout = "2006-01-02"

// Money formats amounts with a currency symbol.
type Money struct {
	Symbol string
}

// Format renders d with two decimals and thousands separators, e.g. ﷼12,345.60.
func (m Money) Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + m.Symbol + groupThousands(whole) + "." + frac
}

// Band renders a projection range as "min – max".
func (m Money) Band(b projection.Band) string {
	return m.Format(b.Min) + " – " + m.Format(b.Max)
}

// Signed renders a transaction amount with a + or - prefix, colored by direction.
func (m Money) Signed(t model.Transaction) string {
	if t.Type == model.TransactionWithdraw {
		return WithdrawStyle.Render("-" + m.Format(t.Amount))
	}
	return AddStyle.Render("+" + m.Format(t.Amount))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a ratio such as 0.256 as "26%".
func FormatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
}

// FormatDate renders a date the way the CLI accepts it.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatGoalLine renders a one-line goal summary.
func FormatGoalLine(m Money, g model.Goal) string {
	status := SubtleStyle.Render("active")
	if g.Status() == model.StatusCompleted {
		status = SuccessStyle.Render(CheckIcon + " completed")
	}
	return fmt.Sprintf("%s %s  %s / %s  (%s)  due %s  %s",
		GoalIcon,
		BoldStyle.Render(g.Name),
		m.Format(g.Saved),
		m.Format(g.Target),
		FormatPercent(g.Progress()),
		FormatDate(g.Date),
		status,
	)
}
