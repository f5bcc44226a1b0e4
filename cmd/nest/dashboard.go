package main

import (
	"context"

	"github.com/Veraticus/nest-egg/internal/cli"
	"github.com/Veraticus/nest-egg/internal/projection"
	"github.com/Veraticus/nest-egg/internal/tui"
	"github.com/Veraticus/nest-egg/internal/tui/themes"
	"github.com/spf13/cobra"
)

const dashboardBarWidth = 40

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize every goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				s := a.manager.Summary()

				writeln(a.out, cli.FormatTitle("Dashboard"))
				if s.GoalCount == 0 {
					writeln(a.out, cli.FormatInfo("No goals yet. Create one with `nest goals create`."))
					return nil
				}

				writef(a.out, "Saved %s of %s (%s)\n",
					cli.BoldStyle.Render(a.money.Format(s.TotalSaved)), a.money.Format(s.TotalTarget), cli.FormatPercent(s.Progress()))
				writeln(a.out, cli.RenderProgress(cli.NewGoalBar(dashboardBarWidth), s.Progress()))
				writef(a.out, "%d goals, %d completed\n", s.GoalCount, s.CompletedCount)

				if len(s.ActiveGoals) == 0 {
					writeln(a.out, cli.FormatSuccess("Every goal is complete"))
					return nil
				}

				writeln(a.out, "")
				writeln(a.out, cli.SubtitleStyle.Render("In progress"))
				now := a.clock.Now()
				for _, g := range s.ActiveGoals {
					writef(a.out, "%s %s  %s to go, %s left\n",
						cli.GoalIcon, cli.BoldStyle.Render(g.Name),
						a.money.Format(g.Remaining()), projection.FormatTimeLeft(now, g.Date))
				}
				return nil
			})
		},
	}
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse goals and their history interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return tui.Run(ctx, a.manager, tui.Config{Theme: themes.Default, Money: a.money})
			})
		},
	}
}
