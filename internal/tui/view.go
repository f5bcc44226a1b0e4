package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("%s Nest egg · %d goals", cli.NestIcon, len(m.goals))))
	b.WriteString("\n")

	if len(m.goals) == 0 {
		b.WriteString(m.theme.Empty.Render("No goals yet. Create one with `nest goals create`."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	for i, g := range m.goals {
		b.WriteString(m.renderGoalRow(i, g))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if g, ok := m.Selected(); ok {
		b.WriteString(m.theme.BorderedBox.Render(m.renderDetail(g)))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderGoalRow(i int, g model.Goal) string {
	cursor := "  "
	name := m.theme.Normal.Render(g.Name)
	if i == m.cursor {
		cursor = "> "
		name = m.theme.Selected.Render(g.Name)
	}

	pct := cli.FormatPercent(g.Progress())
	if g.Status() == model.StatusCompleted {
		pct = m.theme.Completed.Render(cli.CheckIcon + " " + pct)
	}
	return fmt.Sprintf("%s%s  %s %s", cursor, name, cli.RenderProgress(m.bar, g.Progress()), pct)
}

func (m Model) renderDetail(g model.Goal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", cli.GoalIcon, g.Name)
	fmt.Fprintf(&b, "Saved    %s of %s (%s left)\n",
		m.money.Format(g.Saved), m.money.Format(g.Target), m.money.Format(g.Remaining()))
	fmt.Fprintf(&b, "Due      %s\n", cli.FormatDate(g.Date))
	if g.MonthlyNeeded.IsPositive() {
		fmt.Fprintf(&b, "Monthly  %s\n", m.money.Format(g.MonthlyNeeded))
	}
	b.WriteString("\n")

	txs := m.history[g.Name]
	if len(txs) == 0 {
		b.WriteString(m.theme.Empty.Render("No transactions yet."))
		return b.String()
	}

	b.WriteString(m.theme.Subtitle.Render("History"))
	shown := txs
	if rows := m.historyRows(); len(shown) > rows {
		shown = shown[:rows]
	}
	for _, tx := range shown {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s", cli.FormatDate(tx.Date), m.renderAmount(tx))
	}
	if hidden := len(txs) - len(shown); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Empty.Render(fmt.Sprintf("… %d older", hidden)))
	}
	return b.String()
}

func (m Model) renderAmount(tx model.Transaction) string {
	if tx.Type == model.TransactionWithdraw {
		return m.theme.Withdraw.Render("-" + m.money.Format(tx.Amount))
	}
	return m.theme.Add.Render("+" + m.money.Format(tx.Amount))
}
